package service

import (
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) ByUsername(username string) (*model.User, error) {
	return s.userRepository.ByUsername(username)
}
