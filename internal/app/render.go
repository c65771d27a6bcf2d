package app

// Row is one rendered task.
type Row struct {
	ID        string
	Text      string
	Completed bool
	// Opacity is in [0,1]; it drops toward 0 while the task fades out.
	Opacity float64
	// Scale is in [0,1]; it grows toward 1 while the task scales in.
	Scale float64
	// Removing is set once the task is fading out toward removal.
	Removing bool
}

// RenderModel is everything a view needs to draw the screen.
type RenderModel struct {
	Rows        []Row
	Draft       string
	Mode        ModeKind
	EditingID   string
	ButtonLabel string
}
