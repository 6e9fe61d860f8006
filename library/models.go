package library

// Book represents a catalog entry and its current availability.
// IDs are assigned sequentially from 1 and a book is never removed.
type Book struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	Available bool   `json:"available" db:"available"`
}

// User represents a registered library user.
type User struct {
	RegistrationNumber string `json:"registration_number" db:"registration_number"`
	Password           string `json:"-" db:"password"` // plain text, never serialized
}

// Result is the user-facing outcome of a circulation operation.
type Result struct {
	Success bool
	Message string
}

// seedBooks is the catalog every new library starts with, in id order.
var seedBooks = [][2]string{
	{"The God of Small Things", "Arundhati Roy"},
	{"Midnight's Children", "Salman Rushdie"},
	{"A Suitable Boy", "Vikram Seth"},
	{"The White Tiger", "Aravind Adiga"},
	{"Train to Pakistan", "Khushwant Singh"},
	{"Interpreter of Maladies", "Jhumpa Lahiri"},
	{"The Palace of Illusions", "Chitra Banerjee Divakaruni"},
	{"The Guide", "R.K. Narayan"},
	{"The Inheritance of Loss", "Kiran Desai"},
	{"Sita: An Illustrated Retelling of the Ramayana", "Devdutt Pattanaik"},
}
