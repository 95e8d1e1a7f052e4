package service

// ValidationError ошибка клиентских данных. Текст отдаётся клиенту как есть.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrInvalidContact  ValidationError = "Invalid name or phone"
	ErrItemSpace       ValidationError = "Each item.space must be a positive number"
	ErrBatchSpace      ValidationError = "space must be a positive number"
	ErrOrderShape      ValidationError = "Provide items[] or lessonIDs[] with space"
	ErrInvalidID       ValidationError = "Invalid id"
	ErrSpaceNotNumber  ValidationError = "space must be a number"
	ErrSpaceNotInteger ValidationError = "space must be a non-negative integer"
	ErrPriceNotNumber  ValidationError = "price must be a number"
	ErrInvalidJSON     ValidationError = "Invalid JSON body"
)
