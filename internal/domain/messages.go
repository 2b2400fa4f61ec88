package domain

type ClientMessage struct {
	Type            string   `json:"type"`
	JWT             string   `json:"jwt,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Column          *int     `json:"column,omitempty"`
	X               *float64 `json:"x,omitempty"`
	RestartResponse string   `json:"response,omitempty"`
}

type ServerMessage struct {
	Type         string       `json:"type"`
	Message      string       `json:"message,omitempty"`
	GameID       string       `json:"gameId,omitempty"`
	Mode         string       `json:"mode,omitempty"`
	Opponent     string       `json:"opponent,omitempty"`
	YourPlayer   int          `json:"yourPlayer,omitempty"`
	CurrentTurn  int          `json:"currentTurn,omitempty"`
	TurnText     string       `json:"turnText,omitempty"`
	Column       *int         `json:"column,omitempty"` // move_made only
	Row          *int         `json:"row,omitempty"`
	Player       int          `json:"player,omitempty"`
	Board        [][]PlayerID `json:"board,omitempty"`
	NextTurn     int          `json:"nextTurn,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	WinningCells []Position   `json:"winningCells,omitempty"`
	Drop         *DropView    `json:"drop,omitempty"`
	WinLine      *LineView    `json:"winLine,omitempty"`
	Victory      *VictoryView `json:"victory,omitempty"`
	WinDelayMS   int          `json:"winDelayMs,omitempty"`
	AllowRestart *bool        `json:"allowRestart,omitempty"`
	Requester    string       `json:"requester,omitempty"`
	TimeoutSec   int          `json:"timeoutSec,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DropView is what a client needs to replay the falling disk.
type DropView struct {
	X      float64   `json:"x"`
	Radius float64   `json:"radius"`
	Frames []float64 `json:"frames"`
	StepMS int       `json:"stepMs"`
	Color  string    `json:"color"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LineView struct {
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Color string `json:"color"`
	Width int    `json:"width"`
}

type VictoryView struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}
