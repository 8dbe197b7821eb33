package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/agenda/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntryJSON(t *testing.T) {
	Convey("Given a holiday entry", t, func() {
		e := types.Entry{ID: "h", Title: "Año Nuevo", Type: "holiday", Priority: "low", PriorityLabel: "Baja", ReadOnly: true}

		Convey("When encoding it", func() {
			data, err := json.Marshal(e)
			So(err, ShouldBeNil)

			Convey("Then optional fields are omitted and readOnly is present", func() {
				s := string(data)
				So(s, ShouldContainSubstring, `"readOnly":true`)
				So(s, ShouldNotContainSubstring, `"time"`)
				So(s, ShouldNotContainSubstring, `"duration"`)
			})
		})
	})
}

func TestEventInputJSON(t *testing.T) {
	Convey("Given a submission body", t, func() {
		var in types.EventInput
		err := json.Unmarshal([]byte(`{"title":"Dentista","type":"health","time":"09:30","duration":30}`), &in)

		So(err, ShouldBeNil)
		So(in.ID, ShouldEqual, "")
		So(*in.Duration, ShouldEqual, 30)
		So(in.Priority, ShouldEqual, "")
	})
}
