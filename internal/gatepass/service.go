package gatepass

import (
	"context"
	"encoding/hex"
	"time"

	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenMaxAge = 24 * time.Hour

type Service struct {
	DB     *gorm.DB
	Signer Signer
	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue signs a fresh gate pass for the participant and stores it on their
// row for display. Old tokens are not tracked: they simply age out, or get
// cut off by the min_valid_issued_at watermark after a revoke.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	var p models.Participant
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNotFound
		}
		return "", err
	}
	if p.EntityID == nil || *p.EntityID == "" {
		return "", ErrNotOnboarded
	}

	issuedAt := s.now()
	issuedAtMS := issuedAt.UnixMilli()
	payload := ParsedToken{EntityID: *p.EntityID, IssuedAtMS: issuedAtMS}
	token := FormatToken(*p.EntityID, issuedAtMS, s.Signer.Sign(payload.Payload()))

	p.GateToken = &token
	p.GateTokenIssuedAt = &issuedAt
	if err := s.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Current returns the participant's stored gate pass, issuing one lazily when
// none has been stored yet.
func (s *Service) Current(ctx context.Context, userID uuid.UUID) (string, error) {
	var p models.Participant
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNotFound
		}
		return "", err
	}
	if p.EntityID == nil || *p.EntityID == "" {
		return "", ErrNotOnboarded
	}
	if p.GateToken != nil && *p.GateToken != "" {
		return *p.GateToken, nil
	}
	return s.Issue(ctx, userID)
}

// VerifyResult is the record shown to the gate verifier. College/team names
// are best-effort enrichment; nil when the participant has no affiliation.
type VerifyResult struct {
	EntityID    string    `json:"entity_id"`
	UserID      string    `json:"user_id"`
	Fullname    string    `json:"fullname"`
	Email       string    `json:"email"`
	CollegeName *string   `json:"college_name"`
	TeamName    *string   `json:"team_name"`
	ClusterName *string   `json:"cluster_name"`
	IssuedAt    time.Time `json:"issued_at"`
	VerifiedAt  time.Time `json:"verified_at"`
}

// Verify checks a scanned gate pass: parse, freshness, signature (constant
// time), participant lookup, then enrichment. Performs no writes.
func (s *Service) Verify(ctx context.Context, raw string) (*VerifyResult, error) {
	parsed, err := ParseToken(raw)
	if err != nil {
		return nil, err
	}

	issuedAt := time.UnixMilli(parsed.IssuedAtMS)
	if s.now().Sub(issuedAt) > tokenMaxAge {
		return nil, ErrExpired
	}

	sig, err := hex.DecodeString(parsed.SignatureHex)
	if err != nil || !s.Signer.Verify(parsed.Payload(), sig) {
		return nil, ErrInvalidSignature
	}

	var p models.Participant
	if err := s.DB.WithContext(ctx).Where("entity_id = ?", parsed.EntityID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Watermark set by Revoke: anything issued before it is dead early.
	if p.MinValidIssuedAt != nil && issuedAt.Before(*p.MinValidIssuedAt) {
		return nil, ErrExpired
	}

	result := &VerifyResult{
		EntityID:   parsed.EntityID,
		UserID:     p.UserID.String(),
		Fullname:   p.Fullname,
		Email:      p.Email,
		IssuedAt:   issuedAt,
		VerifiedAt: s.now(),
	}

	if p.CollegeID != nil {
		var college models.College
		if err := s.DB.WithContext(ctx).Where("college_id = ?", *p.CollegeID).First(&college).Error; err == nil {
			result.CollegeName = &college.Name
		}
	}
	if p.TeamID != nil {
		var team models.Team
		if err := s.DB.WithContext(ctx).Where("team_id = ?", *p.TeamID).First(&team).Error; err == nil {
			result.TeamName = &team.Name
			if team.ClusterID != nil {
				var cluster models.Cluster
				if err := s.DB.WithContext(ctx).Where("cluster_id = ?", *team.ClusterID).First(&cluster).Error; err == nil {
					result.ClusterName = &cluster.Name
				}
			}
		}
	}

	return result, nil
}

// Revoke advances the participant's watermark to now, killing every token
// issued before this call even if it has not aged out yet.
func (s *Service) Revoke(ctx context.Context, userID uuid.UUID) error {
	var p models.Participant
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	cutoff := s.now()
	p.MinValidIssuedAt = &cutoff
	p.GateToken = nil
	p.GateTokenIssuedAt = nil
	return s.DB.WithContext(ctx).Save(&p).Error
}
