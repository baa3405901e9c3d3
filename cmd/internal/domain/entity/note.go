package entity

type Note struct {
	Base
	Title   string `gorm:"not null"`
	Content string `gorm:"not null"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) DisplayName() string {
	return n.Title
}
