package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"filedrop/internal/app/service"
	"filedrop/internal/common"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"

	. "github.com/smartystreets/goconvey/convey"
)

func newEventService(store *repository.MemoryStore) *service.EventService {
	activities := service.NewActivityService(store)
	return service.NewEventService(store, store, activities)
}

func TestEventService_Create(t *testing.T) {
	Convey("Given an event service over a fresh store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		events := newEventService(store)

		Convey("When creating an event without isActive", func() {
			created, err := events.Create(ctx, service.CreateEventRequest{
				Title:       "Budget files",
				Description: "Upload the yearly budget",
				Deadline:    time.Now().Add(24 * time.Hour),
			})
			So(err, ShouldBeNil)

			Convey("Then isActive defaults to true and the id is assigned", func() {
				So(created.ID, ShouldEqual, 1)
				So(created.IsActive, ShouldBeTrue)
				So(created.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then Get returns an equal value", func() {
				got, err := events.Get(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, created)
			})

			Convey("Then one event_created activity references it", func() {
				activities, err := store.ListActivities(ctx, 1)
				So(err, ShouldBeNil)
				So(len(activities), ShouldEqual, 1)
				So(activities[0].Type, ShouldEqual, model.ActivityEventCreated)
				So(*activities[0].EventID, ShouldEqual, created.ID)
				So(activities[0].SubmissionID, ShouldBeNil)
				So(activities[0].Description, ShouldContainSubstring, "Budget files")
			})
		})

		Convey("When required fields are missing", func() {
			_, err := events.Create(ctx, service.CreateEventRequest{Description: "d", Deadline: time.Now()})
			So(errors.Is(err, common.ErrValidation), ShouldBeTrue)

			_, err = events.Create(ctx, service.CreateEventRequest{Title: "t", Description: "d"})
			So(errors.Is(err, common.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestEventService_List(t *testing.T) {
	Convey("Given two events with different submission counts", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		events := newEventService(store)

		older, err := events.Create(ctx, service.CreateEventRequest{Title: "Older", Description: "d", Deadline: time.Now()})
		So(err, ShouldBeNil)
		newer, err := events.Create(ctx, service.CreateEventRequest{Title: "Newer", Description: "d", Deadline: time.Now()})
		So(err, ShouldBeNil)

		for i := 0; i < 2; i++ {
			So(store.CreateSubmission(ctx, &model.Submission{EventID: older.ID, SubmitterName: "A", SubmitterDepartment: "D"}), ShouldBeNil)
		}

		Convey("Then List is newest first with live counts", func() {
			listed, err := events.List(ctx)
			So(err, ShouldBeNil)
			So(len(listed), ShouldEqual, 2)
			So(listed[0].ID, ShouldEqual, newer.ID)
			So(listed[0].SubmissionCount, ShouldEqual, 0)
			So(listed[1].ID, ShouldEqual, older.ID)
			So(listed[1].SubmissionCount, ShouldEqual, 2)
		})
	})
}

func TestEventService_Update(t *testing.T) {
	Convey("Given an existing event", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		events := newEventService(store)

		created, err := events.Create(ctx, service.CreateEventRequest{
			Title:       "Original title",
			Description: "Original description",
			Deadline:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		})
		So(err, ShouldBeNil)

		Convey("When flipping only isActive", func() {
			inactive := false
			updated, err := events.Update(ctx, created.ID, service.UpdateEventRequest{IsActive: &inactive})
			So(err, ShouldBeNil)

			Convey("Then the other fields are untouched", func() {
				So(updated.IsActive, ShouldBeFalse)
				So(updated.Title, ShouldEqual, "Original title")
				So(updated.Description, ShouldEqual, "Original description")
				So(updated.Deadline, ShouldEqual, created.Deadline)
				So(updated.CreatedAt, ShouldEqual, created.CreatedAt)
			})
		})

		Convey("When updating an unknown id", func() {
			title := "x"
			_, err := events.Update(ctx, 999, service.UpdateEventRequest{Title: &title})
			So(errors.Is(err, common.ErrNotFound), ShouldBeTrue)
		})
	})
}
