package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"filedrop/internal/app/service"
	"filedrop/internal/common"
	"filedrop/internal/domain/repository"
	"filedrop/internal/platform/metrics"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFileService_RoundTrip(t *testing.T) {
	Convey("Given a file service over a fresh store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		files := service.NewFileService(store, metrics.NewManager())

		Convey("When saving a file", func() {
			data := []byte("%PDF-1.4 fake report")
			name, err := files.Save(ctx, "report.pdf", nil, data)
			So(err, ShouldBeNil)

			Convey("Then the storage name keeps the original after the first underscore", func() {
				So(strings.HasSuffix(name, "report.pdf"), ShouldBeTrue)
				So(service.OriginalName(name), ShouldEqual, "report.pdf")
			})

			Convey("Then Get returns the bytes unchanged", func() {
				got, err := files.Get(ctx, name)
				So(err, ShouldBeNil)
				So(got.Data, ShouldResemble, data)
				So(got.OriginalName, ShouldEqual, "report.pdf")
				So(got.Size, ShouldEqual, int64(len(data)))
			})
		})

		Convey("When saving the same original name twice", func() {
			first, err := files.Save(ctx, "notes.txt", nil, []byte("a"))
			So(err, ShouldBeNil)
			second, err := files.Save(ctx, "notes.txt", nil, []byte("b"))
			So(err, ShouldBeNil)

			Convey("Then the storage names never collide", func() {
				So(first, ShouldNotEqual, second)

				one, err := files.Get(ctx, first)
				So(err, ShouldBeNil)
				two, err := files.Get(ctx, second)
				So(err, ShouldBeNil)
				So(one.Data, ShouldResemble, []byte("a"))
				So(two.Data, ShouldResemble, []byte("b"))
			})
		})

		Convey("When saving without a name", func() {
			_, err := files.Save(ctx, "", nil, []byte("x"))
			So(errors.Is(err, common.ErrValidation), ShouldBeTrue)
		})

		Convey("When fetching an unknown storage name", func() {
			_, err := files.Get(ctx, "12345_missing.bin")
			So(errors.Is(err, common.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestOriginalName(t *testing.T) {
	Convey("OriginalName recovers the uploaded name best effort", t, func() {
		So(service.OriginalName("1693000000000-ab12cd34_report.pdf"), ShouldEqual, "report.pdf")
		So(service.OriginalName("1693000000000-ab12cd34_with_underscores.txt"), ShouldEqual, "with_underscores.txt")
		So(service.OriginalName("no-separator"), ShouldEqual, "no-separator")
	})
}
