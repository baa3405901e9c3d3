package service

import (
	"context"
	"errors"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// RecordMapper converts between one entity and its API contracts.
type RecordMapper[T backend.Record, Req any, Resp any] struct {
	FromRequest func(id string, req *Req) T
	ToResponse  func(rec T) *Resp
}

// RecordService serves the CRUD endpoints of one record table.
type RecordService[T backend.Record, Req any, Resp any] struct {
	Name     string
	Repo     backend.Records[T]
	Validate *validator.Validate
	Mapper   RecordMapper[T, Req, Resp]
}

func NewRecordService[T backend.Record, Req any, Resp any](
	name string,
	repo backend.Records[T],
	validate *validator.Validate,
	mapper RecordMapper[T, Req, Resp],
) *RecordService[T, Req, Resp] {
	return &RecordService[T, Req, Resp]{
		Name:     name,
		Repo:     repo,
		Validate: validate,
		Mapper:   mapper,
	}
}

func (s *RecordService[T, Req, Resp]) List(ctx context.Context) ([]*Resp, apierror.ErrorResponse) {
	recs, err := s.Repo.SelectAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch %s: %v", s.Name, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*Resp, len(recs))
	for i, rec := range recs {
		resp[i] = s.Mapper.ToResponse(rec)
	}
	return resp, nil
}

func (s *RecordService[T, Req, Resp]) Get(ctx context.Context, id string) (*Resp, apierror.ErrorResponse) {
	rec, err := s.Repo.SelectByID(ctx, id)
	if err != nil {
		return nil, s.mapError("fetch", err)
	}
	return s.Mapper.ToResponse(rec), nil
}

func (s *RecordService[T, Req, Resp]) Create(ctx context.Context, req *Req) (*Resp, apierror.ErrorResponse) {
	if apierr := s.check(req); apierr != nil {
		return nil, apierr
	}

	rec, err := s.Repo.Insert(ctx, s.Mapper.FromRequest("", req))
	if err != nil {
		return nil, s.mapError("create", err)
	}
	return s.Mapper.ToResponse(rec), nil
}

// Update replaces the whole record, omitted fields are cleared.
func (s *RecordService[T, Req, Resp]) Update(ctx context.Context, id string, req *Req) (*Resp, apierror.ErrorResponse) {
	if apierr := s.check(req); apierr != nil {
		return nil, apierr
	}

	rec, err := s.Repo.Update(ctx, s.Mapper.FromRequest(id, req))
	if err != nil {
		return nil, s.mapError("update", err)
	}
	return s.Mapper.ToResponse(rec), nil
}

func (s *RecordService[T, Req, Resp]) Delete(ctx context.Context, id string) apierror.ErrorResponse {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return s.mapError("delete", err)
	}
	return nil
}

func (s *RecordService[T, Req, Resp]) check(req *Req) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		if apierr := apierror.FromValidationError(valerr); apierr != nil {
			return apierr
		}
		log.Errorf("failed to validate %s request: %v", s.Name, valerr)
		return apierror.MalformedBodyError
	}
	return nil
}

func (s *RecordService[T, Req, Resp]) mapError(op string, err error) apierror.ErrorResponse {
	if errors.Is(err, backend.ErrNotFound) {
		return apierror.NotFoundError
	}

	log.Errorf("failed to %s %s: %v", op, s.Name, err)
	return apierror.InternalServerError
}
