package services

import (
	"testing"

	"conduit-api/models"

	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	userRepo *fakeUserRepo
	svc      ProfileService

	viewer *models.User
	target *models.User
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func (s *ProfileServiceTestSuite) SetupTest() {
	s.userRepo = newFakeUserRepo()
	s.svc = NewProfileService(s.userRepo)

	s.viewer = &models.User{Username: "viewer", Email: "viewer@example.com", Password: "x"}
	s.Require().NoError(s.userRepo.Create(s.viewer))
	s.target = &models.User{Username: "target", Email: "target@example.com", Bio: "writes things", Password: "x"}
	s.Require().NoError(s.userRepo.Create(s.target))
}

func (s *ProfileServiceTestSuite) TestGetProfileAnonymous() {
	profile, err := s.svc.GetProfile("target", 0)
	s.Require().NoError(err)
	s.Equal("target", profile.Username)
	s.Equal("writes things", profile.Bio)
	s.False(profile.Following)
}

func (s *ProfileServiceTestSuite) TestGetProfileUnknownUser() {
	_, err := s.svc.GetProfile("ghost", 0)
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ProfileServiceTestSuite) TestFollowThenProfileShowsFollowing() {
	profile, err := s.svc.Follow(s.viewer.ID, "target")
	s.Require().NoError(err)
	s.True(profile.Following)

	profile, err = s.svc.GetProfile("target", s.viewer.ID)
	s.Require().NoError(err)
	s.True(profile.Following)
}

func (s *ProfileServiceTestSuite) TestFollowUnknownTarget() {
	_, err := s.svc.Follow(s.viewer.ID, "ghost")
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ProfileServiceTestSuite) TestFollowSelf() {
	_, err := s.svc.Follow(s.viewer.ID, "viewer")
	s.Require().Error(err)
	s.IsType(models.ErrorInvalidOperation{}, err)
}

func (s *ProfileServiceTestSuite) TestFollowTwice() {
	_, err := s.svc.Follow(s.viewer.ID, "target")
	s.Require().NoError(err)

	_, err = s.svc.Follow(s.viewer.ID, "target")
	s.Require().Error(err)
	s.IsType(models.ErrorInvalidOperation{}, err)
}

func (s *ProfileServiceTestSuite) TestUnfollowWithoutFollowing() {
	_, err := s.svc.Unfollow(s.viewer.ID, "target")
	s.Require().Error(err)
	s.IsType(models.ErrorInvalidOperation{}, err)
}

func (s *ProfileServiceTestSuite) TestUnfollowSelf() {
	_, err := s.svc.Unfollow(s.viewer.ID, "viewer")
	s.Require().Error(err)
	s.IsType(models.ErrorInvalidOperation{}, err)
}

func (s *ProfileServiceTestSuite) TestFollowUnfollowRoundTrip() {
	third := &models.User{Username: "third", Email: "third@example.com", Password: "x"}
	s.Require().NoError(s.userRepo.Create(third))

	_, err := s.svc.Follow(s.viewer.ID, "target")
	s.Require().NoError(err)
	_, err = s.svc.Follow(s.viewer.ID, "third")
	s.Require().NoError(err)

	profile, err := s.svc.Unfollow(s.viewer.ID, "target")
	s.Require().NoError(err)
	s.False(profile.Following)

	// The other follow is untouched.
	profile, err = s.svc.GetProfile("third", s.viewer.ID)
	s.Require().NoError(err)
	s.True(profile.Following)

	profile, err = s.svc.GetProfile("target", s.viewer.ID)
	s.Require().NoError(err)
	s.False(profile.Following)
}
