package api

import "time"

type ServiceInfo struct {
	Message         string   `json:"message"`
	Endpoints       []string `json:"endpoints"`
	AvailableTables []string `json:"available_tables"`
	KnownTables     []string `json:"known_tables"`
}

type TablesResponse struct {
	Tables []string `json:"tables"`
}

type TableDetailsResponse struct {
	TableName string   `json:"table_name"`
	RowNames  []string `json:"row_names"`
}

type RowSumResponse struct {
	TableName       string    `json:"table_name"`
	RowName         string    `json:"row_name"`
	Sum             float64   `json:"sum"`
	ValuesProcessed int       `json:"values_processed"`
	NumericValues   []float64 `json:"numeric_values"`
}

type ReloadResponse struct {
	Message      string   `json:"message"`
	TablesLoaded int      `json:"tables_loaded"`
	TableNames   []string `json:"table_names"`
	Location     string   `json:"location,omitempty"`
	Status       string   `json:"status"`
	Error        *string  `json:"error,omitempty"`
}

type ReloadRecord struct {
	ID           string    `json:"id"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	TablesLoaded int       `json:"tables_loaded"`
	TableNames   []string  `json:"table_names"`
	Error        *string   `json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

type Section struct {
	Name      string `json:"name"`
	MarkerRow int    `json:"marker_row"`
	StartRow  int    `json:"start_row"`
	Rows      []int  `json:"rows"`
}

type DebugResponse struct {
	CurrentDirectory string              `json:"current_directory"`
	Location         string              `json:"location"`
	DataLoaded       bool                `json:"excel_data_loaded"`
	TableNames       []string            `json:"excel_data_keys"`
	TableDetails     map[string][]string `json:"excel_data_details"`
	Sections         []Section           `json:"sections"`
}

type ErrorResponse struct {
	Error     string   `json:"error"`
	Available []string `json:"available,omitempty"`
}
