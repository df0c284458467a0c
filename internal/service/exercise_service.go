package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/domain"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"
	"github.com/cemgthedev/ElitePlans-rest-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TutorialUpload is a presigned PUT target for an exercise's tutorial media.
// The client uploads directly to object storage and then sets the exercise's
// tutorial URL to the object key's public location.
type TutorialUpload struct {
	UploadURL string
	ObjectKey string
	ExpiresAt time.Time
}

// TutorialDownload is a presigned GET target for an exercise's stored
// tutorial media.
type TutorialDownload struct {
	DownloadURL string
	ObjectKey   string
	ExpiresAt   time.Time
}

// ExerciseService owns exercise records. Exercises are leaves: no cascade.
type ExerciseService interface {
	Create(ctx context.Context, title string, nSections, nReps int, weight float64, tutorialURL string, workoutID primitive.ObjectID) (*domain.Exercise, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Update(ctx context.Context, id primitive.ObjectID, title string, nSections, nReps int, weight float64, tutorialURL string, workoutID primitive.ObjectID) (*domain.Exercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.ExerciseFilter, page repository.Page, sort repository.Sort) ([]domain.Exercise, error)
	Count(ctx context.Context, filter repository.ExerciseFilter) (int64, error)
	TutorialUploadURL(ctx context.Context, id primitive.ObjectID, contentType string) (*TutorialUpload, error)
	TutorialDownloadURL(ctx context.Context, id primitive.ObjectID) (*TutorialDownload, error)
}

type exerciseService struct {
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	files     storage.FileStorage
}

func NewExerciseService(exercises repository.ExerciseRepository, workouts repository.WorkoutRepository, files storage.FileStorage) ExerciseService {
	return &exerciseService{exercises: exercises, workouts: workouts, files: files}
}

func (s *exerciseService) requireWorkout(ctx context.Context, workoutID primitive.ObjectID) error {
	if _, err := s.workouts.GetByID(ctx, workoutID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ReferenceError{Kind: "workout", ID: workoutID.Hex()}
		}
		return err
	}
	return nil
}

func (s *exerciseService) Create(ctx context.Context, title string, nSections, nReps int, weight float64, tutorialURL string, workoutID primitive.ObjectID) (*domain.Exercise, error) {
	if err := s.requireWorkout(ctx, workoutID); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		Title:       title,
		NSections:   nSections,
		NReps:       nReps,
		Weight:      weight,
		TutorialURL: tutorialURL,
		WorkoutID:   workoutID,
	}
	if _, err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return s.exercises.GetByID(ctx, id)
}

// Update is a full-document replace of the client-editable fields. The stored
// object key is carried over; it is owned by the presign flow, not by updates.
func (s *exerciseService) Update(ctx context.Context, id primitive.ObjectID, title string, nSections, nReps int, weight float64, tutorialURL string, workoutID primitive.ObjectID) (*domain.Exercise, error) {
	if err := s.requireWorkout(ctx, workoutID); err != nil {
		return nil, err
	}
	stored, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		ID:                id,
		Title:             title,
		NSections:         nSections,
		NReps:             nReps,
		Weight:            weight,
		TutorialURL:       tutorialURL,
		TutorialObjectKey: stored.TutorialObjectKey,
		WorkoutID:         workoutID,
	}
	if err := s.exercises.Replace(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// Delete removes the exercise and, when one exists, its stored tutorial
// object. Object cleanup is best-effort; a storage failure does not block
// the delete.
func (s *exerciseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	stored, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if stored.TutorialObjectKey != "" {
		_ = s.files.DeleteObject(ctx, stored.TutorialObjectKey)
	}
	return s.exercises.Delete(ctx, id)
}

func (s *exerciseService) List(ctx context.Context, filter repository.ExerciseFilter, page repository.Page, sort repository.Sort) ([]domain.Exercise, error) {
	return s.exercises.List(ctx, filter, page, sort)
}

func (s *exerciseService) Count(ctx context.Context, filter repository.ExerciseFilter) (int64, error) {
	return s.exercises.Count(ctx, filter)
}

// TutorialUploadURL generates a presigned PUT URL for the exercise's tutorial
// media and records the new object key on the exercise. The key is unique per
// upload; a previously stored object is deleted rather than overwritten, and
// that cleanup is best-effort.
func (s *exerciseService) TutorialUploadURL(ctx context.Context, id primitive.ObjectID, contentType string) (*TutorialUpload, error) {
	stored, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("tutorials/%s/%s", id.Hex(), uuid.NewString())
	expires := storage.DefaultPresignedURLExpiry

	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, contentType, expires)
	if err != nil {
		return nil, err
	}

	previousKey := stored.TutorialObjectKey
	stored.TutorialObjectKey = objectKey
	if err := s.exercises.Replace(ctx, stored); err != nil {
		return nil, err
	}
	if previousKey != "" {
		_ = s.files.DeleteObject(ctx, previousKey)
	}

	return &TutorialUpload{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().UTC().Add(expires),
	}, nil
}

// TutorialDownloadURL generates a presigned GET URL for the exercise's stored
// tutorial media. An exercise with no stored object reports
// domain.ErrNotFound.
func (s *exerciseService) TutorialDownloadURL(ctx context.Context, id primitive.ObjectID) (*TutorialDownload, error) {
	stored, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.TutorialObjectKey == "" {
		return nil, domain.ErrNotFound
	}

	expires := storage.DefaultPresignedURLExpiry
	downloadURL, err := s.files.GeneratePresignedDownloadURL(ctx, stored.TutorialObjectKey, expires)
	if err != nil {
		return nil, err
	}
	return &TutorialDownload{
		DownloadURL: downloadURL,
		ObjectKey:   stored.TutorialObjectKey,
		ExpiresAt:   time.Now().UTC().Add(expires),
	}, nil
}
