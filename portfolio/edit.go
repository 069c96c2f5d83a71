package portfolio

import (
	"strconv"
	"time"
)

// The editing helpers below never mutate their receiver. Each returns a new
// document so a caller can hold on to the previous version. Out-of-range
// indexes leave the document as it was.

// SetPersonalInfo sets one personalInfo key.
func (d *Document) SetPersonalInfo(key string, value any) *Document {
	out := d.Clone()
	if out.PersonalInfo == nil {
		out.PersonalInfo = PersonalInfo{}
	}
	out.PersonalInfo[key] = value
	return out
}

func (d *Document) AddSkillCategory() *Document {
	out := d.Clone()
	out.Skills = append(out.Skills, SkillCategory{Title: "New Category", Items: []SkillItem{}})
	return out
}

func (d *Document) UpdateSkillCategoryTitle(index int, title string) *Document {
	out := d.Clone()
	if inRange(index, len(out.Skills)) {
		out.Skills[index].Title = title
	}
	return out
}

func (d *Document) DeleteSkillCategory(index int) *Document {
	out := d.Clone()
	out.Skills = removeAt(out.Skills, index)
	return out
}

func (d *Document) AddSkillItem(category int) *Document {
	out := d.Clone()
	if inRange(category, len(out.Skills)) {
		out.Skills[category].Items = append(out.Skills[category].Items, SkillItem{Name: "New Skill"})
	}
	return out
}

func (d *Document) UpdateSkillItem(category, item int, name string) *Document {
	out := d.Clone()
	if inRange(category, len(out.Skills)) && inRange(item, len(out.Skills[category].Items)) {
		out.Skills[category].Items[item].Name = name
	}
	return out
}

func (d *Document) DeleteSkillItem(category, item int) *Document {
	out := d.Clone()
	if inRange(category, len(out.Skills)) {
		out.Skills[category].Items = removeAt(out.Skills[category].Items, item)
	}
	return out
}

// AddProject appends a placeholder project whose ID is now in Unix milliseconds.
func (d *Document) AddProject(now time.Time) *Document {
	out := d.Clone()
	out.Projects = append(out.Projects, Project{
		ID:          now.UnixMilli(),
		Title:       "New Project",
		Description: "Project description",
		Tech:        "Technologies used",
		Link:        "https://example.com",
		Image:       "https://via.placeholder.com/400x300",
	})
	return out
}

// UpdateProject replaces the project at index with the result of fn.
func (d *Document) UpdateProject(index int, fn func(*Project)) *Document {
	out := d.Clone()
	if inRange(index, len(out.Projects)) {
		fn(&out.Projects[index])
	}
	return out
}

func (d *Document) DeleteProject(index int) *Document {
	out := d.Clone()
	out.Projects = removeAt(out.Projects, index)
	return out
}

// AddAchievement appends a placeholder achievement dated to now's year.
func (d *Document) AddAchievement(now time.Time) *Document {
	out := d.Clone()
	out.Achievements = append(out.Achievements, Achievement{
		ID:          now.UnixMilli(),
		Title:       "New Achievement",
		Year:        strconv.Itoa(now.Year()),
		Description: "Achievement description",
		Image:       "/placeholder.png",
	})
	return out
}

func (d *Document) UpdateAchievement(index int, fn func(*Achievement)) *Document {
	out := d.Clone()
	if inRange(index, len(out.Achievements)) {
		fn(&out.Achievements[index])
	}
	return out
}

func (d *Document) DeleteAchievement(index int) *Document {
	out := d.Clone()
	out.Achievements = removeAt(out.Achievements, index)
	return out
}

func inRange(i, n int) bool { return i >= 0 && i < n }

// removeAt keeps a non-nil result so a document emptied by deletes still
// passes Validate.
func removeAt[T any](s []T, i int) []T {
	if !inRange(i, len(s)) {
		return s
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
