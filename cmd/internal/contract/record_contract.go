package contract

// Requests are bound from JSON bodies by the API and from form posts by the
// dashboard, hence both tag sets.

type ChildRequest struct {
	FirstName          string `json:"first_name" form:"first_name" validate:"required,max=80"`
	LastName           string `json:"last_name" form:"last_name" validate:"required,max=80"`
	DateOfBirth        string `json:"date_of_birth" form:"date_of_birth" validate:"required,isodate"`
	Gender             string `json:"gender" form:"gender" validate:"max=40"`
	FamilyDetails      string `json:"family_details" form:"family_details" validate:"max=10000"`
	MedicalInformation string `json:"medical_information" form:"medical_information" validate:"max=10000"`
	EducationDetails   string `json:"education_details" form:"education_details" validate:"max=10000"`
	SocialWorker       string `json:"social_worker" form:"social_worker" validate:"max=120"`
	PlacementStatus    string `json:"placement_status" form:"placement_status" validate:"max=120"`
	PlacementHistory   string `json:"placement_history" form:"placement_history" validate:"max=10000"`
	BehaviouralNeeds   string `json:"behavioural_needs" form:"behavioural_needs" validate:"max=10000"`
	PhotoURL           string `json:"photo_url" form:"photo_url" validate:"omitempty,http_url"`
}

type ChildResponse struct {
	ID                 string `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             string `json:"gender"`
	FamilyDetails      string `json:"family_details"`
	MedicalInformation string `json:"medical_information"`
	EducationDetails   string `json:"education_details"`
	SocialWorker       string `json:"social_worker"`
	PlacementStatus    string `json:"placement_status"`
	PlacementHistory   string `json:"placement_history"`
	BehaviouralNeeds   string `json:"behavioural_needs"`
	PhotoURL           string `json:"photo_url"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type FamilyRequest struct {
	P1FirstName   string `json:"p1_first_name" form:"p1_first_name" validate:"required,max=80"`
	P1LastName    string `json:"p1_last_name" form:"p1_last_name" validate:"required,max=80"`
	P2FirstName   string `json:"p2_first_name" form:"p2_first_name" validate:"max=80"`
	P2LastName    string `json:"p2_last_name" form:"p2_last_name" validate:"max=80"`
	DateOfBirth   string `json:"date_of_birth" form:"date_of_birth" validate:"required,isodate"`
	ContactNumber string `json:"contact_number" form:"contact_number" validate:"required,max=40"`
	PhotoURL      string `json:"photo_url" form:"photo_url" validate:"omitempty,http_url"`
}

type FamilyResponse struct {
	ID            string `json:"id"`
	P1FirstName   string `json:"p1_first_name"`
	P1LastName    string `json:"p1_last_name"`
	P2FirstName   string `json:"p2_first_name"`
	P2LastName    string `json:"p2_last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	ContactNumber string `json:"contact_number"`
	PhotoURL      string `json:"photo_url"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type StaffRequest struct {
	FirstName     string `json:"first_name" form:"first_name" validate:"required,max=80"`
	LastName      string `json:"last_name" form:"last_name" validate:"required,max=80"`
	DateOfBirth   string `json:"date_of_birth" form:"date_of_birth" validate:"required,isodate"`
	Position      string `json:"position" form:"position" validate:"max=120"`
	ContactNumber string `json:"contact_number" form:"contact_number" validate:"required,max=40"`
	PhotoURL      string `json:"photo_url" form:"photo_url" validate:"omitempty,http_url"`
}

type StaffResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Position      string `json:"position"`
	ContactNumber string `json:"contact_number"`
	PhotoURL      string `json:"photo_url"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type NoteRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required,max=1000000"`
}

type NoteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
