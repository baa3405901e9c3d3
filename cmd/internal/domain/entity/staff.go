package entity

type Staff struct {
	Base
	FirstName     string `gorm:"not null"`
	LastName      string `gorm:"not null"`
	DateOfBirth   string `gorm:"not null;default:''"`
	Position      string `gorm:"not null;default:''"`
	ContactNumber string `gorm:"not null;default:''"`
	PhotoURL      string `gorm:"not null;default:''"`
}

func (Staff) TableName() string {
	return "staff_members"
}

func (s *Staff) DisplayName() string {
	return fullName(s.FirstName, s.LastName)
}
