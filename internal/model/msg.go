package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// TablesLoadedMsg is sent when the table list is loaded.
type TablesLoadedMsg struct {
	Tables []TableInfo
}

// DatasetLoadedMsg is sent when a table's rows are loaded.
type DatasetLoadedMsg struct {
	Dataset Dataset
}

// Screen represents different app screens.
type Screen int

const (
	ScreenTables Screen = iota
	ScreenTable
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
