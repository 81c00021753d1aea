package models

// DueDateLayout is the format of Assignment.DueDate (an HTML date input value).
const DueDateLayout = "2006-01-02"

type Assignment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`
}

func (a Assignment) GetID() string { return a.ID }
