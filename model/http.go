package model

// ResolveRequest describes one controller state. Buttons (fundamental and
// slash root) accept a hardware index ("1") or a button name ("E"). An omitted
// pattern falls back to the instrument default; an empty one is rejected.
type ResolveRequest struct {
	Chord        string `json:"chord"`
	Key          string `json:"key"`
	Shift        int    `json:"shift"`
	Fundamental  string `json:"fundamental"`
	Pattern      []int  `json:"pattern"`
	Slashed      bool   `json:"slashed"`
	SlashRoot    string `json:"slash_root"`
	SlashTrigger int    `json:"slash_trigger"`
	Sharp        bool   `json:"sharp"`
	FlatModifier bool   `json:"flat_modifier"`

	// Harp switches to string resolution over Strings strings.
	Harp      bool `json:"harp"`
	Chromatic bool `json:"chromatic"`
	Strings   int  `json:"strings"`
	// Simple ignores key and shift.
	Simple bool `json:"simple"`
}

type Voice struct {
	Index int    `json:"index"`
	Level *int   `json:"level,omitempty"`
	Pitch int    `json:"pitch"`
	Name  string `json:"name"`
}

type ResolveResponse struct {
	Chord    string  `json:"chord"`
	Key      string  `json:"key"`
	ChordKey string  `json:"chord_key"`
	Pitches  []int   `json:"pitches"`
	Voices   []Voice `json:"voices"`
}

type ChordInfo struct {
	Name    string `json:"name"`
	Offsets []int  `json:"offsets"`
}

type KeyInfo struct {
	Name        string   `json:"name"`
	Flat        bool     `json:"flat"`
	Accidentals int      `json:"accidentals"`
	Buttons     []string `json:"buttons"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
