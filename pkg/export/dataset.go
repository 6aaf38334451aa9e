package export

// Dataset табличные данные для выгрузки
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Records возвращает строки в порядке заголовков
func (d Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for i, header := range d.Headers {
			record[i] = row[header]
		}
		records = append(records, record)
	}
	return records
}
