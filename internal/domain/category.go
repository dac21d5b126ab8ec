package domain

import "strings"

// Category is one member of the active category enumeration.
type Category string

// CategoryInfo pairs a category value with presentation metadata.
type CategoryInfo struct {
	Value       Category
	Description string
}

// CategoryProfile is the active category enumeration. The deployment
// selects it by name because the enumeration changed between rollouts.
type CategoryProfile struct {
	Name       string
	Categories []CategoryInfo
}

const (
	CategoryProfileDefault = "default"
	CategoryProfileFine    = "fine"
)

var defaultProfile = CategoryProfile{
	Name: CategoryProfileDefault,
	Categories: []CategoryInfo{
		{Value: "Account & Security", Description: "Password resets, login failures, account security"},
		{Value: "Product Support", Description: "Feature guidance, navigation help, FAQs"},
		{Value: "Technical Setup/Support", Description: "Installation, configuration, troubleshooting"},
		{Value: "Cloud Services", Description: "Cloud service access, mobile app issues"},
		{Value: "General", Description: "Service info and non-technical inquiries"},
	},
}

var fineProfile = CategoryProfile{
	Name: CategoryProfileFine,
	Categories: []CategoryInfo{
		{Value: "Access", Description: "Password resets, login failures, MFA issues"},
		{Value: "Usage", Description: "Navigation help, feature guidance, FAQs"},
		{Value: "Verification", Description: "Hardware/software checks, compatibility"},
		{Value: "Installation", Description: "Setup, configuration, troubleshooting"},
		{Value: "Cloud", Description: "Mobile app issues, cloud service access"},
		{Value: "Analytics", Description: "Report/dashboard access, visualization errors"},
		{Value: "QA", Description: "QA tool issues, test execution problems"},
		{Value: "Security", Description: "Account security, compliance procedures"},
		{Value: "General", Description: "Service info, non-technical inquiries"},
	},
}

// LoadCategoryProfile resolves a profile by name. Anything other than the
// built-in names is treated as a comma-separated custom enumeration.
func LoadCategoryProfile(spec string) CategoryProfile {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", CategoryProfileDefault:
		return defaultProfile
	case CategoryProfileFine:
		return fineProfile
	}

	profile := CategoryProfile{Name: "custom"}
	for _, part := range strings.Split(spec, ",") {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		profile.Categories = append(profile.Categories, CategoryInfo{Value: Category(value)})
	}
	if len(profile.Categories) == 0 {
		return defaultProfile
	}
	return profile
}

// Canonical matches a classifier answer against the enumeration
// case-insensitively and returns the canonical value.
func (p CategoryProfile) Canonical(s string) (Category, bool) {
	trimmed := strings.TrimSpace(s)
	for _, info := range p.Categories {
		if strings.EqualFold(string(info.Value), trimmed) {
			return info.Value, true
		}
	}
	return "", false
}

// Values lists the enumeration members in order.
func (p CategoryProfile) Values() []Category {
	values := make([]Category, 0, len(p.Categories))
	for _, info := range p.Categories {
		values = append(values, info.Value)
	}
	return values
}

// Fallback is the category the classifier is told to use when unsure:
// "General" when the profile has it, otherwise the last member.
func (p CategoryProfile) Fallback() Category {
	for _, info := range p.Categories {
		if strings.EqualFold(string(info.Value), "General") {
			return info.Value
		}
	}
	return p.Categories[len(p.Categories)-1].Value
}
