package reader

const (
	MinFontSize     = 14
	MaxFontSize     = 32
	DefaultFontSize = 18
	FontSizeStep    = 2
)

// Preferences are presentation-only reader settings.
type Preferences struct {
	FontSize     int
	ShowSettings bool
}

func DefaultPreferences() Preferences {
	return Preferences{FontSize: DefaultFontSize}
}

func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}

func (p *Preferences) IncreaseFont() {
	p.FontSize = ClampFontSize(p.FontSize + FontSizeStep)
}

func (p *Preferences) DecreaseFont() {
	p.FontSize = ClampFontSize(p.FontSize - FontSizeStep)
}

func (p *Preferences) ToggleSettings() {
	p.ShowSettings = !p.ShowSettings
}
