package view

import (
	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/domain/entity"
)

const (
	RecordPageSize = 6
	FilePageSize   = 10
)

// Field limits match the API request contracts.
const (
	nameMax = 80
	textMax = 10000
)

var ChildEditor = &EditorSpec[*entity.Child]{
	Noun:     "Child",
	HasPhoto: true,
	Groups: []FieldGroup{
		{Name: "Basic Information", Fields: []Field{
			{Name: "first_name", Label: "First Name", Required: true, MaxLen: nameMax},
			{Name: "last_name", Label: "Last Name", Required: true, MaxLen: nameMax},
			{Name: "date_of_birth", Label: "Date of Birth", Kind: Date, Required: true},
			{Name: "gender", Label: "Gender", MaxLen: 40},
		}},
		{Name: "Family/Support", Fields: []Field{
			{Name: "family_details", Label: "Family Details", Kind: TextArea, MaxLen: textMax},
			{Name: "social_worker", Label: "Social Worker", MaxLen: 120},
		}},
		{Name: "Medical", Fields: []Field{
			{Name: "medical_information", Label: "Medical Information", Kind: TextArea, MaxLen: textMax},
			{Name: "behavioural_needs", Label: "Behavioural Needs", Kind: TextArea, MaxLen: textMax},
		}},
		{Name: "Education/Placement", Fields: []Field{
			{Name: "education_details", Label: "Education Details", Kind: TextArea, MaxLen: textMax},
			{Name: "placement_status", Label: "Placement Status", MaxLen: 120},
			{Name: "placement_history", Label: "Placement History", Kind: TextArea, MaxLen: textMax},
		}},
	},
	Values: func(c *entity.Child) map[string]string {
		return map[string]string{
			"first_name":          c.FirstName,
			"last_name":           c.LastName,
			"date_of_birth":       c.DateOfBirth,
			"gender":              c.Gender,
			"family_details":      c.FamilyDetails,
			"social_worker":       c.SocialWorker,
			"medical_information": c.MedicalInformation,
			"behavioural_needs":   c.BehaviouralNeeds,
			"education_details":   c.EducationDetails,
			"placement_status":    c.PlacementStatus,
			"placement_history":   c.PlacementHistory,
			PhotoKey:              c.PhotoURL,
		}
	},
	Build: func(id string, v map[string]string) *entity.Child {
		c := &entity.Child{
			FirstName:          v["first_name"],
			LastName:           v["last_name"],
			DateOfBirth:        v["date_of_birth"],
			Gender:             v["gender"],
			FamilyDetails:      v["family_details"],
			SocialWorker:       v["social_worker"],
			MedicalInformation: v["medical_information"],
			BehaviouralNeeds:   v["behavioural_needs"],
			EducationDetails:   v["education_details"],
			PlacementStatus:    v["placement_status"],
			PlacementHistory:   v["placement_history"],
			PhotoURL:           v[PhotoKey],
		}
		c.ID = id
		return c
	},
}

var FamilyEditor = &EditorSpec[*entity.Family]{
	Noun:     "Family",
	HasPhoto: true,
	Groups: []FieldGroup{
		{Name: "Family", Fields: []Field{
			{Name: "p1_first_name", Label: "Parent First Name", Required: true, MaxLen: nameMax},
			{Name: "p1_last_name", Label: "Parent Last Name", Required: true, MaxLen: nameMax},
			{Name: "p2_first_name", Label: "Second Parent First Name", MaxLen: nameMax},
			{Name: "p2_last_name", Label: "Second Parent Last Name", MaxLen: nameMax},
			{Name: "date_of_birth", Label: "Date of Birth", Kind: Date, Required: true},
			{Name: "contact_number", Label: "Contact Number", Kind: Phone, Required: true, MaxLen: 40},
		}},
	},
	Values: func(f *entity.Family) map[string]string {
		return map[string]string{
			"p1_first_name":  f.P1FirstName,
			"p1_last_name":   f.P1LastName,
			"p2_first_name":  f.P2FirstName,
			"p2_last_name":   f.P2LastName,
			"date_of_birth":  f.DateOfBirth,
			"contact_number": f.ContactNumber,
			PhotoKey:         f.PhotoURL,
		}
	},
	Build: func(id string, v map[string]string) *entity.Family {
		f := &entity.Family{
			P1FirstName:   v["p1_first_name"],
			P1LastName:    v["p1_last_name"],
			P2FirstName:   v["p2_first_name"],
			P2LastName:    v["p2_last_name"],
			DateOfBirth:   v["date_of_birth"],
			ContactNumber: v["contact_number"],
			PhotoURL:      v[PhotoKey],
		}
		f.ID = id
		return f
	},
}

var StaffEditor = &EditorSpec[*entity.Staff]{
	Noun:     "Staff Member",
	HasPhoto: true,
	Groups: []FieldGroup{
		{Name: "Staff", Fields: []Field{
			{Name: "first_name", Label: "First Name", Required: true, MaxLen: nameMax},
			{Name: "last_name", Label: "Last Name", Required: true, MaxLen: nameMax},
			{Name: "date_of_birth", Label: "Date of Birth", Kind: Date, Required: true},
			{Name: "position", Label: "Position", MaxLen: 120},
			{Name: "contact_number", Label: "Contact Number", Kind: Phone, Required: true, MaxLen: 40},
		}},
	},
	Values: func(s *entity.Staff) map[string]string {
		return map[string]string{
			"first_name":     s.FirstName,
			"last_name":      s.LastName,
			"date_of_birth":  s.DateOfBirth,
			"position":       s.Position,
			"contact_number": s.ContactNumber,
			PhotoKey:         s.PhotoURL,
		}
	},
	Build: func(id string, v map[string]string) *entity.Staff {
		s := &entity.Staff{
			FirstName:     v["first_name"],
			LastName:      v["last_name"],
			DateOfBirth:   v["date_of_birth"],
			Position:      v["position"],
			ContactNumber: v["contact_number"],
			PhotoURL:      v[PhotoKey],
		}
		s.ID = id
		return s
	},
}

var NoteEditor = &EditorSpec[*entity.Note]{
	Noun: "Note",
	Groups: []FieldGroup{
		{Name: "Note", Fields: []Field{
			{Name: "title", Label: "Title", Required: true, MaxLen: 200},
			{Name: "content", Label: "Content", Kind: TextArea, Required: true, MaxLen: 1000000},
		}},
	},
	Values: func(n *entity.Note) map[string]string {
		return map[string]string{
			"title":   n.Title,
			"content": n.Content,
		}
	},
	Build: func(id string, v map[string]string) *entity.Note {
		n := &entity.Note{Title: v["title"], Content: v["content"]}
		n.ID = id
		return n
	},
}

func displayName[T backend.Record](rec T) string {
	return rec.DisplayName()
}

func NewChildrenView(repo backend.Records[*entity.Child], photos PhotoUploader) *ListView[*entity.Child] {
	return NewListView(ListSpec[*entity.Child]{
		Title:        "Foster Children",
		Description:  "Here's a list of all the foster children currently in the system.",
		AddLabel:     "+ Add Foster Child",
		PageSize:     RecordPageSize,
		SortKey:      displayName[*entity.Child],
		Editor:       ChildEditor,
		DefaultOrder: Asc,
	}, repo, photos)
}

func NewFamiliesView(repo backend.Records[*entity.Family], photos PhotoUploader) *ListView[*entity.Family] {
	return NewListView(ListSpec[*entity.Family]{
		Title:        "Foster Families",
		Description:  "Here's a list of all the foster families registered with the agency.",
		AddLabel:     "+ Add Foster Family",
		PageSize:     RecordPageSize,
		SortKey:      displayName[*entity.Family],
		Editor:       FamilyEditor,
		DefaultOrder: Asc,
	}, repo, photos)
}

func NewStaffView(repo backend.Records[*entity.Staff], photos PhotoUploader) *ListView[*entity.Staff] {
	return NewListView(ListSpec[*entity.Staff]{
		Title:        "Staff Management",
		Description:  "Here's a list of all the staff members.",
		AddLabel:     "+ Add Staff Member",
		PageSize:     RecordPageSize,
		SortKey:      displayName[*entity.Staff],
		Editor:       StaffEditor,
		DefaultOrder: Asc,
	}, repo, photos)
}

func NewNotesView(repo backend.Records[*entity.Note]) *ListView[*entity.Note] {
	return NewListView(ListSpec[*entity.Note]{
		Title:       "Notes",
		Description: "Case notes, newest first.",
		AddLabel:    "+ Add Note",
		PageSize:    RecordPageSize,
		SortKey:     displayName[*entity.Note],
		Editor:      NoteEditor,
	}, repo, nil)
}
