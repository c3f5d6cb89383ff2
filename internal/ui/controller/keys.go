package controller

// Key клавиша, значимая для формы.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyEscape
)

// KeyEvent нажатие клавиши в окне формы.
type KeyEvent struct {
	Key  Key
	Ctrl bool
}
