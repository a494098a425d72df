package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/astralearn/internal/apperror"
	"github.com/sakif/astralearn/internal/model"
	"github.com/sakif/astralearn/internal/repository/memory"
)

func TestUpdateProgress_ClampsToRange(t *testing.T) {
	cases := []struct {
		name     string
		progress int
		want     int
	}{
		{"in range", 45, 45},
		{"zero", 0, 0},
		{"full", 100, 100},
		{"negative clamps to 0", -10, 0},
		{"over 100 clamps to 100", 150, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.New()
			authSvc := newTestAuthService(t, store)
			user := registerTestUser(t, authSvc, "alice").User
			svc := NewLearningService(store, store, testLogger())

			topics, _ := store.GetLearningTopics(context.Background(), user.ID)

			topic, err := svc.UpdateProgress(context.Background(), user.ID, topics[0].ID, tc.progress)
			if err != nil {
				t.Fatalf("UpdateProgress() error = %v", err)
			}
			if topic.Progress != tc.want {
				t.Errorf("Progress = %d, want %d", topic.Progress, tc.want)
			}
		})
	}
}

func TestUpdateProgress_RecordsActivity(t *testing.T) {
	store := memory.New()
	authSvc := newTestAuthService(t, store)
	user := registerTestUser(t, authSvc, "alice").User
	svc := NewLearningService(store, store, testLogger())

	topics, _ := store.GetLearningTopics(context.Background(), user.ID)

	topic, err := svc.UpdateProgress(context.Background(), user.ID, topics[0].ID, 60)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	activities, _ := store.GetRecentActivities(context.Background(), user.ID, 1)
	if activities[0].ActivityType != model.ActivityProgressUpdated {
		t.Errorf("activity type = %q, want progress_updated", activities[0].ActivityType)
	}
	want := fmt.Sprintf("Updated progress in %s to 60%%", topic.TopicName)
	if activities[0].Description != want {
		t.Errorf("description = %q, want %q", activities[0].Description, want)
	}
}

func TestUpdateProgress_UnknownTopic(t *testing.T) {
	store := memory.New()
	svc := NewLearningService(store, store, testLogger())

	_, err := svc.UpdateProgress(context.Background(), 1, 9999, 50)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
