package service

import (
	"context"
	"strings"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/storage"
)

// MediaUpload is returned when a trainer asks to attach a video to an exercise.
type MediaUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, caller domain.Caller, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Exercise], error)
	UpdateExercise(ctx context.Context, id string, updates []repository.Update) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error

	RequestMediaUpload(ctx context.Context, id, fileName, contentType string) (*MediaUpload, error)
	GetMediaURL(ctx context.Context, id string) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage // nil when S3 is not configured
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage, log *logger.Logger) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		log:          log.With("service", "exercise"),
	}
}

// CreateExercise stores a new exercise owned by the caller.
func (s *exerciseService) CreateExercise(ctx context.Context, caller domain.Caller, exercise *domain.Exercise) (*domain.Exercise, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return nil, validationError("name is required")
	}
	if len(exercise.MuscleGroup) == 0 {
		return nil, validationError("muscle_group must not be empty")
	}
	exercise.CreatedBy = caller.ID
	return s.exerciseRepo.Create(ctx, exercise)
}

func (s *exerciseService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrExerciseNotFound)
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, params repository.ListParams) (*domain.Page[domain.Exercise], error) {
	return s.exerciseRepo.List(ctx, params)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, id string, updates []repository.Update) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, translate(err, ErrExerciseNotFound)
	}
	return exercise, nil
}

// DeleteExercise removes the exercise and, best effort, the media object it owns.
func (s *exerciseService) DeleteExercise(ctx context.Context, id string) error {
	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, ErrExerciseNotFound)
	}
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrExerciseNotFound)
	}
	s.removeMedia(ctx, existing.VideoURL)
	return nil
}

// RequestMediaUpload reserves a new object key for the exercise, records it
// as the exercise's media reference and returns a presigned PUT URL for it.
// A previously uploaded object is removed.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, id, fileName, contentType string) (*MediaUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrMediaUnavailable
	}
	if contentType == "" {
		return nil, validationError("content_type is required")
	}
	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrExerciseNotFound)
	}

	key := storage.ExerciseMediaKey(id, fileName)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.Update(ctx, id, []repository.Update{{Field: "video_url", Value: key}}); err != nil {
		return nil, translate(err, ErrExerciseNotFound)
	}
	s.removeMedia(ctx, existing.VideoURL)

	return &MediaUpload{UploadURL: uploadURL, ObjectKey: key}, nil
}

// GetMediaURL returns a link to the exercise's media: a presigned GET URL for
// uploaded objects, or the stored reference itself when it is an external URL.
func (s *exerciseService) GetMediaURL(ctx context.Context, id string) (string, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return "", translate(err, ErrExerciseNotFound)
	}
	if exercise.VideoURL == nil || *exercise.VideoURL == "" {
		return "", ErrMediaNotFound
	}
	ref := *exercise.VideoURL
	if !storage.IsExerciseMediaKey(ref) {
		return ref, nil
	}
	if s.fileStorage == nil {
		return "", ErrMediaUnavailable
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, ref, storage.DefaultPresignedURLExpiry)
}

func (s *exerciseService) removeMedia(ctx context.Context, ref *string) {
	if s.fileStorage == nil || ref == nil || !storage.IsExerciseMediaKey(*ref) {
		return
	}
	if err := s.fileStorage.DeleteObject(ctx, *ref); err != nil {
		s.log.Warn("Failed to remove exercise media", "key", *ref, "error", err)
	}
}
