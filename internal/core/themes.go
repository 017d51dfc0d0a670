package core

// DefaultThemeName is served to anonymous viewers and assigned to new users when no theme exists.
const DefaultThemeName = "default"

func DefaultTheme() Theme {
	return Theme{
		Name:      DefaultThemeName,
		Primary:   "hsl(165, 23%, 65%)",
		Secondary: "hsl(170, 20%, 71%)",
		Accent:    "#59A19F",
		Accent2:   "#5FA59C",
		Mood:      "light",
	}
}

// BuiltinThemes are the themes an administrator can populate on top of the default one.
func BuiltinThemes() []Theme {
	return []Theme{
		{Name: "purple", Primary: "hsl(283,88%,31%)", Secondary: "hsl(218, 18%, 32%)", Accent: "hsl(304,32%,30%)", Accent2: "hsl(283,90%,32%)", Mood: "dark"},
		{Name: "azure", Primary: "hsl(200,64%,70%)", Secondary: "hsl(179,81%,69%)", Accent: "hsl(251,84%,73%)", Accent2: "#8996EB", Mood: "light"},
		{Name: "jasmine", Primary: "hsl(40,99%, 44%)", Secondary: "hsl(60,12%,10%)", Accent: "hsl(0,80%,44%)", Accent2: "hsl(108,58%,31%)", Mood: "dark"},
		{Name: "ruby", Primary: "hsl(0,78%,35%)", Secondary: "hsl(0,9%,4%)", Accent: "hsl(10,91%,29%)", Accent2: "hsl(0,43%,25%)", Mood: "dark"},
		{Name: "dark", Primary: "hsl(200, 16%, 19%)", Secondary: "hsl(218, 18%, 32%)", Accent: "hsl(251,90%,34%)", Accent2: "hsl(283,90%,32%)", Mood: "dark"},
	}
}
