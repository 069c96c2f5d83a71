package portfolio

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Extra keeps object members that the typed fields do not write back: keys
// outside the model (an achievement "icon", say) and members that omitempty
// would drop, such as "image": "". Values are kept as received.
type Extra map[string]json.RawMessage

// decodeKeeping unmarshals data into v and returns the members of data that
// re-encoding v would not reproduce.
func decodeKeeping(data []byte, v any) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return nil, err
	}
	typed, err := encodeCompact(v)
	if err != nil {
		return nil, err
	}
	written, err := memberNames(typed)
	if err != nil {
		return nil, err
	}

	var extra Extra
	for k, val := range raw {
		if hasFold(written, k) {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[k] = val
	}
	return extra, nil
}

// encodeKeeping encodes v and appends the members of extra that v did not
// write itself, in key order.
func encodeKeeping(v any, extra Extra) ([]byte, error) {
	typed, err := encodeCompact(v)
	if err != nil || len(extra) == 0 {
		return typed, err
	}
	written, err := memberNames(typed)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(typed[:len(typed)-1])
	empty := len(written) == 0
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if hasFold(written, k) {
			continue
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		key, err := encodeCompact(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func memberNames(object []byte) ([]string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(object, &m); err != nil {
		return nil, err
	}
	return slices.Collect(maps.Keys(m)), nil
}

// hasFold matches the way encoding/json pairs keys with struct fields.
func hasFold(names []string, key string) bool {
	for _, n := range names {
		if strings.EqualFold(n, key) {
			return true
		}
	}
	return false
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return encodeKeeping(plain(d), d.Extra)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var v plain
	extra, err := decodeKeeping(data, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*d = Document(v)
	return nil
}

func (c SkillCategory) MarshalJSON() ([]byte, error) {
	type plain SkillCategory
	return encodeKeeping(plain(c), c.Extra)
}

func (c *SkillCategory) UnmarshalJSON(data []byte) error {
	type plain SkillCategory
	var v plain
	extra, err := decodeKeeping(data, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*c = SkillCategory(v)
	return nil
}

func (s SkillItem) MarshalJSON() ([]byte, error) {
	type plain SkillItem
	return encodeKeeping(plain(s), s.Extra)
}

func (s *SkillItem) UnmarshalJSON(data []byte) error {
	type plain SkillItem
	var v plain
	extra, err := decodeKeeping(data, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*s = SkillItem(v)
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	return encodeKeeping(plain(p), p.Extra)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var v plain
	extra, err := decodeKeeping(data, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*p = Project(v)
	return nil
}

func (a Achievement) MarshalJSON() ([]byte, error) {
	type plain Achievement
	return encodeKeeping(plain(a), a.Extra)
}

func (a *Achievement) UnmarshalJSON(data []byte) error {
	type plain Achievement
	var v plain
	extra, err := decodeKeeping(data, &v)
	if err != nil {
		return err
	}
	v.Extra = extra
	*a = Achievement(v)
	return nil
}
