package model

type TransposeRequestBody struct {
	Text           string `json:"text"`
	Shift          int    `json:"shift"`
	Bemol          bool   `json:"bemol"`
	Latin          bool   `json:"latin"`
	HTML           bool   `json:"html"`
	HideChords     bool   `json:"hide_chords"`
	HideLyrics     bool   `json:"hide_lyrics"`
	RemoveComments bool   `json:"remove_comments"`
	BreakSlash     bool   `json:"break_slash"`
}

func (b TransposeRequestBody) Flags() RenderFlags {
	f := RenderFlags{
		HideChords:     b.HideChords,
		HideLyrics:     b.HideLyrics,
		HTML:           b.HTML,
		Bemol:          b.Bemol,
		RemoveComments: b.RemoveComments,
		BreakSlash:     b.BreakSlash,
	}
	if b.Latin {
		f.Locale = LocaleLatin
	}
	return f
}

type TransposeResponse struct {
	Id     string `json:"id"`
	Output string `json:"output"`
	// NOTE: nil when the text has no chord line
	Key *string `json:"key"`
}

type ShiftsRequestBody struct {
	Text  string `json:"text"`
	Latin bool   `json:"latin"`
}

type ShiftsResponse struct {
	Id     string  `json:"id"`
	Key    string  `json:"key"`
	Shifts []Shift `json:"shifts"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
