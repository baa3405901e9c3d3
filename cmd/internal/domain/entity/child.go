package entity

type Child struct {
	Base
	FirstName          string `gorm:"not null"`
	LastName           string `gorm:"not null"`
	DateOfBirth        string `gorm:"not null"`
	Gender             string `gorm:"not null;default:''"`
	FamilyDetails      string `gorm:"not null;default:''"`
	MedicalInformation string `gorm:"not null;default:''"`
	EducationDetails   string `gorm:"not null;default:''"`
	SocialWorker       string `gorm:"not null;default:''"`
	PlacementStatus    string `gorm:"not null;default:''"`
	PlacementHistory   string `gorm:"not null;default:''"`
	BehaviouralNeeds   string `gorm:"not null;default:''"`
	PhotoURL           string `gorm:"not null;default:''"`
}

func (Child) TableName() string {
	return "foster_children"
}

func (c *Child) DisplayName() string {
	return fullName(c.FirstName, c.LastName)
}
