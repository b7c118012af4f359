package config

// Application constants - fixed values for the station report tool
const (
	// Application Info
	AppName    = "Station Document Report"
	AppVersion = "1.0.0"

	// Configuration
	EnvPrefix      = "STATIONS"
	ConfigFileName = "stationreport.yaml"

	// File Paths (relative to executable)
	DefaultDataDir         = "data"
	DefaultInputDir        = "data/input"
	DefaultReportsDir      = "data/reports"
	DefaultLogsDir         = "logs"
	DefaultInputFileName   = "KidStationsDocs.xlsx"
	DefaultReportFileName  = "Doc_Statement_And_Progress_Code_Analysis.xlsx"
	DefaultManifestName    = "run_manifest.json"
	DefaultLogFileName     = "stationreport.log"
	DefaultMetricsFileName = "stationreport.prom"

	// Source workbook layout
	DefaultHeaderRow = 1 // zero-based; the first row holds a title banner

	// Output formatting
	DefaultPercentPrecision int32 = 2

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Source column names. These are fixed by the station survey workbook.
const (
	ColumnDocA         = "A Statement"
	ColumnDocB         = "B Statement"
	ColumnDocC         = "C Statement"
	ColumnDistrict     = "DistrictName"
	ColumnProgressCode = "Main_Progress_Code"
	ColumnLandowner    = "Landowner"
	ColumnStationName  = "StationName"
)

// RequiredColumns lists every column the reader must find in the header row.
var RequiredColumns = []string{
	ColumnDocA,
	ColumnDocB,
	ColumnDocC,
	ColumnDistrict,
	ColumnProgressCode,
	ColumnLandowner,
	ColumnStationName,
}

// Derived column names written to the report.
const (
	ColumnLandownerType          = "Landowner_Type"
	ColumnTranslatedProgressCode = "Translated_Progress_Code"
	ColumnHasDocA                = "Has_Doc_A"
	ColumnHasDocB                = "Has_Doc_B"
	ColumnHasDocC                = "Has_Doc_C"
	ColumnTotalCenters           = "Total_Centers"
	ColumnTotalDistricts         = "Total_Districts"
	ColumnDistrictsSpanned       = "Districts_Spanned"
	ColumnDistricts              = "Districts"
	ColumnPercentage             = "Percentage"
)

// Report sheet names, in workbook order.
const (
	SheetDocStatementAnalysis      = "Doc_Statement_Analysis"
	SheetProgressCodeAnalysis      = "Progress_Code_Analysis"
	SheetLandownerProgressAnalysis = "Landowner_Progress_Analysis"
	SheetLandownerDocAnalysis      = "Landowner_Doc_Analysis"
	SheetSortedCenters             = "Sorted_Centers"
	SheetLandownerPercentages      = "Landowner_Percentages"
	SheetLandownerDistricts        = "Landowner_Districts"
	SheetLandownerSummary          = "Landowner_Summary"
)

// SheetOrder is the order sheets appear in the report workbook.
var SheetOrder = []string{
	SheetDocStatementAnalysis,
	SheetProgressCodeAnalysis,
	SheetLandownerProgressAnalysis,
	SheetLandownerDocAnalysis,
	SheetSortedCenters,
	SheetLandownerPercentages,
	SheetLandownerDistricts,
	SheetLandownerSummary,
}

// DistrictJoinSeparator joins district names in the landowner sheets.
const DistrictJoinSeparator = ", "
