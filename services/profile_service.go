package services

import (
	"errors"
	"strconv"

	"conduit-api/models"
	"conduit-api/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(username string, viewerID uint) (*models.ProfileDto, error)
	Follow(viewerID uint, targetUsername string) (*models.ProfileDto, error)
	Unfollow(viewerID uint, targetUsername string) (*models.ProfileDto, error)
}

type profileService struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(username string, viewerID uint) (*models.ProfileDto, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", username)
		}
		return nil, err
	}

	following := false
	if viewerID != 0 {
		viewer, err := s.userRepo.GetByID(viewerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(viewerID), 10))
			}
			return nil, err
		}
		following = viewer.IsFollowing(target.ID)
	}

	return profileToDto(target, following), nil
}

// Follow runs its guards in order: the target must exist, must not be the
// caller, and must not already be followed. The mutation is a plain
// read-modify-write on the caller's following set; concurrent requests for
// the same user are last-write-wins.
func (s *profileService) Follow(viewerID uint, targetUsername string) (*models.ProfileDto, error) {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", targetUsername)
		}
		return nil, err
	}

	if target.ID == viewerID {
		return nil, models.ErrorInvalidOperation{Message: "cannot follow yourself"}
	}

	viewer, err := s.userRepo.GetByID(viewerID)
	if err != nil {
		return nil, err
	}

	if viewer.IsFollowing(target.ID) {
		return nil, models.ErrorInvalidOperation{Message: "already following " + targetUsername}
	}

	if err := s.userRepo.AddFollowing(viewer, target); err != nil {
		return nil, err
	}

	log.Info().Uint("viewer_id", viewerID).Str("target", targetUsername).Msg("user followed")

	return profileToDto(target, true), nil
}

func (s *profileService) Unfollow(viewerID uint, targetUsername string) (*models.ProfileDto, error) {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", targetUsername)
		}
		return nil, err
	}

	if target.ID == viewerID {
		return nil, models.ErrorInvalidOperation{Message: "cannot unfollow yourself"}
	}

	viewer, err := s.userRepo.GetByID(viewerID)
	if err != nil {
		return nil, err
	}

	if !viewer.IsFollowing(target.ID) {
		return nil, models.ErrorInvalidOperation{Message: "not following " + targetUsername}
	}

	if err := s.userRepo.RemoveFollowing(viewer, target); err != nil {
		return nil, err
	}

	log.Info().Uint("viewer_id", viewerID).Str("target", targetUsername).Msg("user unfollowed")

	return profileToDto(target, false), nil
}

func profileToDto(user *models.User, following bool) *models.ProfileDto {
	return &models.ProfileDto{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}
