package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// wantsCSV reports whether the negotiated type is text/csv.
func wantsCSV(mt shaping.MediaType) bool {
	return mt.Type == "text" && mt.SubType == "csv"
}

// writeCSV renders shaped records with their keys as the header row.
func writeCSV(c *gin.Context, records []shaping.ShapedRecord) error {
	c.Header(constants.HeaderContentType, constants.ContentTypeCSV+"; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if len(records) > 0 {
		header := records[0].Keys()
		if err := w.Write(header); err != nil {
			return err
		}
		row := make([]string, len(header))
		for _, rec := range records {
			for i, key := range header {
				v, _ := rec.Get(key)
				row[i] = csvValue(v)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func csvValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
