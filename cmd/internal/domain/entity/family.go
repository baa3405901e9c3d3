package entity

// Family is a foster family. Only the first parent is mandatory, the second
// pair of names stays empty for single-parent households.
type Family struct {
	Base
	P1FirstName   string `gorm:"column:p1_first_name;not null"`
	P1LastName    string `gorm:"column:p1_last_name;not null"`
	P2FirstName   string `gorm:"column:p2_first_name;not null;default:''"`
	P2LastName    string `gorm:"column:p2_last_name;not null;default:''"`
	DateOfBirth   string `gorm:"not null;default:''"`
	ContactNumber string `gorm:"not null;default:''"`
	PhotoURL      string `gorm:"not null;default:''"`
}

func (Family) TableName() string {
	return "foster_families"
}

func (f *Family) DisplayName() string {
	return fullName(f.P1FirstName, f.P1LastName)
}
