package render

import "github.com/iamasit07/connect-four/internal/domain"

type Palette struct {
	Background string `json:"background"`
	Board      string `json:"board"`
	EmptyHole  string `json:"emptyHole"`
	Red        string `json:"red"`
	Yellow     string `json:"yellow"`
	TextDark   string `json:"textDark"`
	Outline    string `json:"outline"`
	Button     string `json:"button"`
}

var DefaultPalette = Palette{
	Background: "#FFFFFF",
	Board:      "#00285c",
	EmptyHole:  "#dfe7ee",
	Red:        "#ff6b6b",
	Yellow:     "#ffd166",
	TextDark:   "#20334d",
	Outline:    "#0d1c33",
	Button:     "#2d6cdf",
}

// ColorFor returns the fill of a cell owned by p.
func (p Palette) ColorFor(player domain.PlayerID) string {
	switch player {
	case domain.Player1:
		return p.Red
	case domain.Player2:
		return p.Yellow
	default:
		return p.EmptyHole
	}
}
