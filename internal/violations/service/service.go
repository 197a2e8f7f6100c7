// Package service handles violation reports: photo intake, GPS extraction,
// zone resolution, and persistence.
package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/violations/repository"
	"geoas_backend/platform/apperr"
	"geoas_backend/platform/logger"
)

// maxPhotoSize caps report photos at 10 MiB.
const maxPhotoSize = 10 << 20

// ZoneResolver maps a point to a location decision without touching the
// tracked-actor state.
type ZoneResolver interface {
	Resolve(ctx context.Context, point geo.Point) (geo.LocationDecision, error)
}

// PhotoStore persists report photos.
type PhotoStore interface {
	UploadPhoto(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error)
	PhotoURL(ctx context.Context, key string) (string, error)
}

// ViolationRepo persists reports.
type ViolationRepo interface {
	Create(ctx context.Context, v repository.Violation) (repository.Violation, error)
	List(ctx context.Context, limit int) ([]repository.Violation, error)
}

type Service struct {
	repo     ViolationRepo
	photos   PhotoStore
	resolver ZoneResolver
	log      *logger.Logger
}

func NewService(repo ViolationRepo, photos PhotoStore, resolver ZoneResolver, log *logger.Logger) *Service {
	return &Service{repo: repo, photos: photos, resolver: resolver, log: log}
}

// Report is the input for a new violation report.
type Report struct {
	Description string
	FileName    string
	ContentType string
	Photo       io.Reader
	PhotoSize   int64
}

// Submit stores a report. The photo's EXIF GPS position, when present, is
// resolved against the protected zones; a photo without a position is still
// accepted, with the location fields left empty.
func (s *Service) Submit(ctx context.Context, report Report) (repository.Violation, error) {
	if strings.TrimSpace(report.Description) == "" {
		return repository.Violation{}, apperr.Validation("description is required").WithOp("violations.Submit")
	}
	if report.PhotoSize <= 0 || report.PhotoSize > maxPhotoSize {
		return repository.Violation{}, apperr.Validation("photo size must be between 1 byte and 10 MiB").WithOp("violations.Submit")
	}

	// The photo is read twice, once for EXIF and once for upload.
	photo, err := io.ReadAll(io.LimitReader(report.Photo, maxPhotoSize+1))
	if err != nil {
		return repository.Violation{}, apperr.Wrap(apperr.KindBadRequest, "failed to read photo", err).WithOp("violations.Submit")
	}
	if int64(len(photo)) > maxPhotoSize {
		return repository.Violation{}, apperr.Validation("photo size must be between 1 byte and 10 MiB").WithOp("violations.Submit")
	}

	violation := repository.Violation{Description: strings.TrimSpace(report.Description)}

	if point, err := extractPhotoLocation(bytes.NewReader(photo)); err != nil {
		s.log.Info("violation photo without gps position", "reason", err.Error())
	} else {
		violation.Latitude = &point.Latitude
		violation.Longitude = &point.Longitude

		decision, err := s.resolver.Resolve(ctx, point)
		if err != nil {
			s.log.CollaboratorError("geofence", "resolve violation location", err)
		} else {
			violation.Inside = decision.Inside
			violation.ZoneName = decision.Zone
			if decision.ProtectionLevel != nil {
				level := string(*decision.ProtectionLevel)
				violation.ProtectionLevel = &level
			}
		}
	}

	key, err := s.photos.UploadPhoto(ctx, report.FileName, report.ContentType, bytes.NewReader(photo), int64(len(photo)))
	if err != nil {
		return repository.Violation{}, apperr.Wrap(apperr.KindUnavailable, "photo storage unreachable", err).WithOp("violations.Submit")
	}
	violation.PhotoKey = key

	created, err := s.repo.Create(ctx, violation)
	if err != nil {
		return repository.Violation{}, apperr.Wrap(apperr.KindInternal, "failed to store violation", err).WithOp("violations.Submit")
	}

	return created, nil
}

// ListedViolation is a report with a presigned photo URL.
type ListedViolation struct {
	repository.Violation
	PhotoURL string
}

// List returns recent reports with download URLs for their photos. A failed
// presign leaves the URL empty rather than dropping the report.
func (s *Service) List(ctx context.Context, limit int) ([]ListedViolation, error) {
	violations, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list violations", err).WithOp("violations.List")
	}

	listed := make([]ListedViolation, 0, len(violations))
	for _, v := range violations {
		url, err := s.photos.PhotoURL(ctx, v.PhotoKey)
		if err != nil {
			s.log.CollaboratorError("storage", "presign photo url", err)
		}
		listed = append(listed, ListedViolation{Violation: v, PhotoURL: url})
	}

	return listed, nil
}
