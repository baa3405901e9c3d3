package service

import (
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/domain/entity"
	"fostercare/cmd/internal/utils"
)

// normalizeDate is only called on validated input, so a parse failure means
// the field was empty.
func normalizeDate(raw string) string {
	date, err := utils.NormalizeDate(raw)
	if err != nil {
		return raw
	}
	return date
}

var ChildMapper = RecordMapper[*entity.Child, contract.ChildRequest, contract.ChildResponse]{
	FromRequest: func(id string, req *contract.ChildRequest) *entity.Child {
		c := &entity.Child{
			FirstName:          req.FirstName,
			LastName:           req.LastName,
			DateOfBirth:        normalizeDate(req.DateOfBirth),
			Gender:             req.Gender,
			FamilyDetails:      req.FamilyDetails,
			MedicalInformation: req.MedicalInformation,
			EducationDetails:   req.EducationDetails,
			SocialWorker:       req.SocialWorker,
			PlacementStatus:    req.PlacementStatus,
			PlacementHistory:   req.PlacementHistory,
			BehaviouralNeeds:   req.BehaviouralNeeds,
			PhotoURL:           req.PhotoURL,
		}
		c.ID = id
		return c
	},
	ToResponse: func(c *entity.Child) *contract.ChildResponse {
		return &contract.ChildResponse{
			ID:                 c.ID,
			FirstName:          c.FirstName,
			LastName:           c.LastName,
			DateOfBirth:        c.DateOfBirth,
			Gender:             c.Gender,
			FamilyDetails:      c.FamilyDetails,
			MedicalInformation: c.MedicalInformation,
			EducationDetails:   c.EducationDetails,
			SocialWorker:       c.SocialWorker,
			PlacementStatus:    c.PlacementStatus,
			PlacementHistory:   c.PlacementHistory,
			BehaviouralNeeds:   c.BehaviouralNeeds,
			PhotoURL:           c.PhotoURL,
			CreatedAt:          utils.FormatEpoch(c.CreatedAt),
			UpdatedAt:          utils.FormatEpoch(c.UpdatedAt),
		}
	},
}

var FamilyMapper = RecordMapper[*entity.Family, contract.FamilyRequest, contract.FamilyResponse]{
	FromRequest: func(id string, req *contract.FamilyRequest) *entity.Family {
		f := &entity.Family{
			P1FirstName:   req.P1FirstName,
			P1LastName:    req.P1LastName,
			P2FirstName:   req.P2FirstName,
			P2LastName:    req.P2LastName,
			DateOfBirth:   normalizeDate(req.DateOfBirth),
			ContactNumber: req.ContactNumber,
			PhotoURL:      req.PhotoURL,
		}
		f.ID = id
		return f
	},
	ToResponse: func(f *entity.Family) *contract.FamilyResponse {
		return &contract.FamilyResponse{
			ID:            f.ID,
			P1FirstName:   f.P1FirstName,
			P1LastName:    f.P1LastName,
			P2FirstName:   f.P2FirstName,
			P2LastName:    f.P2LastName,
			DateOfBirth:   f.DateOfBirth,
			ContactNumber: f.ContactNumber,
			PhotoURL:      f.PhotoURL,
			CreatedAt:     utils.FormatEpoch(f.CreatedAt),
			UpdatedAt:     utils.FormatEpoch(f.UpdatedAt),
		}
	},
}

var StaffMapper = RecordMapper[*entity.Staff, contract.StaffRequest, contract.StaffResponse]{
	FromRequest: func(id string, req *contract.StaffRequest) *entity.Staff {
		s := &entity.Staff{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			DateOfBirth:   normalizeDate(req.DateOfBirth),
			Position:      req.Position,
			ContactNumber: req.ContactNumber,
			PhotoURL:      req.PhotoURL,
		}
		s.ID = id
		return s
	},
	ToResponse: func(s *entity.Staff) *contract.StaffResponse {
		return &contract.StaffResponse{
			ID:            s.ID,
			FirstName:     s.FirstName,
			LastName:      s.LastName,
			DateOfBirth:   s.DateOfBirth,
			Position:      s.Position,
			ContactNumber: s.ContactNumber,
			PhotoURL:      s.PhotoURL,
			CreatedAt:     utils.FormatEpoch(s.CreatedAt),
			UpdatedAt:     utils.FormatEpoch(s.UpdatedAt),
		}
	},
}

var NoteMapper = RecordMapper[*entity.Note, contract.NoteRequest, contract.NoteResponse]{
	FromRequest: func(id string, req *contract.NoteRequest) *entity.Note {
		n := &entity.Note{Title: req.Title, Content: req.Content}
		n.ID = id
		return n
	},
	ToResponse: func(n *entity.Note) *contract.NoteResponse {
		return &contract.NoteResponse{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: utils.FormatEpoch(n.CreatedAt),
			UpdatedAt: utils.FormatEpoch(n.UpdatedAt),
		}
	},
}
