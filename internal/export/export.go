package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jvsales/faultctl/internal/delivery"
	"github.com/jvsales/faultctl/internal/record"
)

// CSVHeader is the fixed column header of the spreadsheet export.
var CSVHeader = []string{
	"Data", "Horário", "Falha", "Tempo Parado (min)", "Carregou Caixas Manual",
	"Numero Robo", "Cuba", "Produto", "Observações", "Matrícula Operador",
	"Nome Operador", "Turno", "Hora do Registro", "Status Power BI",
}

// WriteCSV renders all records, delivered or not, as CSV in insertion
// order. encoding/csv handles quoting, so free text with commas or
// embedded quotes survives a round trip.
func WriteCSV(w io.Writer, records []record.FaultRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date, r.Time, r.Fault, r.Downtime, r.ManualBoxes,
			r.RobotNumber, r.Cuba, r.Product, r.Observations,
			r.OperatorRegistration, r.OperatorName, r.Shift,
			r.RecordTime, string(r.DeliveryStatus),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// analyticsFile is the JSON document consumed by the analytics tool's
// manual import: export metadata plus one sink-shaped row per record.
type analyticsFile struct {
	Metadata analyticsMetadata  `json:"metadata"`
	Data     []delivery.Payload `json:"data"`
}

type analyticsMetadata struct {
	ExportDate   string `json:"exportDate"`
	TotalRecords int    `json:"totalRecords"`
	ExportedBy   string `json:"exportedBy"`
}

// WriteAnalytics renders the analytics import document. exportedBy is the
// operator name, or "Sistema" when empty.
func WriteAnalytics(w io.Writer, records []record.FaultRecord, exportedBy string, now time.Time) error {
	if exportedBy == "" {
		exportedBy = "Sistema"
	}

	doc := analyticsFile{
		Metadata: analyticsMetadata{
			ExportDate:   now.UTC().Format(time.RFC3339),
			TotalRecords: len(records),
			ExportedBy:   exportedBy,
		},
		Data: make([]delivery.Payload, 0, len(records)),
	}
	for _, r := range records {
		doc.Data = append(doc.Data, delivery.FormatRecord(r, now))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CSVFilename returns the download name for a CSV export on the given day.
func CSVFilename(t time.Time) string {
	return fmt.Sprintf("controle_falhas_%s.csv", t.Format("2006-01-02"))
}

// AnalyticsFilename returns the download name for an analytics export.
func AnalyticsFilename(t time.Time) string {
	return fmt.Sprintf("powerbi_data_%s.json", t.Format("2006-01-02"))
}
