package plate

// MeasurementRecord is one long-format observation: a single well at a single
// timepoint. TimeH is always derived as TimeS/3600 at full precision.
type MeasurementRecord struct {
	Well  string
	TimeS float64
	TimeH float64
	OD    float64
}

// Reshape flattens a plate into long-format records, iterating wells in
// row-major order (A1..A12, B1..H12) and each well's samples in extraction
// order. An empty plate reshapes to an empty record set, not an error.
func Reshape(p *Plate) []MeasurementRecord {
	records := make([]MeasurementRecord, 0, p.Len())
	for _, well := range p.Wells() {
		for _, s := range p.Samples(well) {
			records = append(records, MeasurementRecord{
				Well:  well,
				TimeS: s.TimeS,
				TimeH: s.TimeS / 3600.0,
				OD:    s.OD,
			})
		}
	}
	return records
}
