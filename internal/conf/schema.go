package conf

// Section names, in the order they appear in a serialized document.
const (
	SectionLogger        = "logger"
	SectionConsole       = "console"
	SectionVisualization = "visualization.wcsaxes"
	SectionIERS          = "utils.iers"
	SectionData          = "utils.data"
	SectionUnits         = "units.quantity"
)

var loggerSchema = []Declaration{
	{Key: "log_level", Default: "INFO", Description: "The level of the logger"},
	{Key: "log_warnings", Default: true, Description: "Whether to log `warnings.warn` calls."},
	{Key: "log_exceptions", Default: false, Description: "Whether to log exceptions before raising them."},
	{Key: "log_to_file", Default: false, Description: "Whether to always log messages to a log file."},
	{Key: "log_file_path", Default: "", Description: "The file to log messages to.\n" +
		"If empty string is given, it defaults to a file ``'astropy.log'`` in the astropy config directory."},
	{Key: "log_file_level", Default: "INFO", Description: "Threshold for logging messages to `log_file_path`."},
	{Key: "log_file_format", Default: "%(asctime)r, %(origin)r, %(levelname)r, %(message)r",
		Description: "Format for log file entries."},
	{Key: "log_file_encoding", Default: "", Description: "The encoding (e.g., UTF-8) to use for the log file.\n" +
		"If empty string is given, it defaults to the platform-preferred encoding."},
}

var consoleSchema = []Declaration{
	{Key: "unicode_output", Default: false,
		Description: "When True, use Unicode characters when outputting values, and displaying widgets at the console"},
	{Key: "use_color", Default: true,
		Description: "When True, use ANSI color escape sequences when writing to the console"},
	{Key: "max_lines", Default: int32(-1), Description: "Maximum number of lines in the display of pretty-printed objects.\n" +
		"If not provided, try to determine automatically from the terminal size.\n" +
		"Negative numbers mean no limit."},
	{Key: "max_width", Default: int32(-1), Description: "Maximum number of characters per line in the display of pretty-printed objects.\n" +
		"If not provided, try to determine automatically from the terminal size.\n" +
		"Negative numbers mean no limit."},
}

var visualizationSchema = []Declaration{
	{Key: "coordinate_range_samples", Default: int32(50),
		Description: "The number of samples along each image axis when determining the range of coordinates in a plot."},
	{Key: "frame_boundary_samples", Default: int32(1000),
		Description: "How many points to sample along the axes when determining tick locations."},
	{Key: "grid_samples", Default: int32(1000), Description: "How many points to sample along grid lines."},
	{Key: "contour_grid_samples", Default: int32(200),
		Description: "The grid size to use when drawing a grid using contours"},
}

var iersSchema = []Declaration{
	{Key: "auto_download", Default: true, Description: "Enable auto-downloading of the latest IERS data.\n" +
		"If set to False then the local IERS-B file will be used (even\n" +
		"if the full IERS file with predictions was already downloaded and cached).\n" +
		"This parameter also controls whether internet resources will be queried\n" +
		"to update the leap second table if the installed version is out of date. Default is True."},
	{Key: "auto_max_age", Default: 30.0, Description: "Maximum age (days) of predictive data before auto-downloading.\n" +
		"See 'Auto refresh behavior' in astropy.utils.iers documentation for details. Default is 30."},
	{Key: "iers_auto_url", Default: "https://datacenter.iers.org/data/9/finals2000A.all",
		Description: "URL for auto-downloading IERS file data."},
	{Key: "iers_auto_url_mirror", Default: "https://maia.usno.navy.mil/ser7/finals2000A.all",
		Description: "Mirror URL for auto-downloading IERS file data."},
	{Key: "remote_timeout", Default: 10.0, Description: "Remote timeout downloading IERS file data (seconds)."},
	{Key: "iers_degraded_accuracy", Default: "error",
		Description: "IERS behavior if the range of available IERS data does not cover\n" +
			"the times when converting time scales, potentially leading to degraded accuracy."},
	{Key: "system_leap_second_file", Default: "", Description: "System file with leap seconds."},
	{Key: "iers_leap_second_auto_url", Default: "https://hpiers.obspm.fr/iers/bul/bulc/Leap_Second.dat",
		Description: "URL for auto-downloading leap seconds."},
}

var dataSchema = []Declaration{
	{Key: "allow_internet", Default: true, Description: "If False, prevents any attempt to download from Internet."},
	{Key: "compute_hash_block_size", Default: int32(65536), Description: "Block size for computing file hashes."},
	{Key: "data_url", Default: "http://data.astropy.org/", Description: "Primary URL for astropy remote data site."},
	{Key: "data_url_mirror", Default: "http://www.astropy.org/astropy-data/",
		Description: "Mirror URL for astropy remote data site."},
	{Key: "default_http_user_agent", Default: "astropy", Description: "Default User-Agent for HTTP request headers.\n" +
		"This can be overwritten for a particular call via http_headers option, where available.\n" +
		"This only provides the default value when not set by https_headers."},
	{Key: "delete_temporary_downloads_at_exit", Default: true, Description: "If True, temporary download files created\n" +
		"when the cache is inaccessible will be deleted at the end of the python session."},
	{Key: "download_block_size", Default: int32(65536), Description: "Number of bytes of remote data to download per step."},
	{Key: "data_query_remote_timeout", Default: 10.0, Description: "Time to wait for remote data queries (in seconds)."},
}

var unitsSchema = []Declaration{
	{Key: "latex_array_threshold", Default: int32(100),
		Description: "The maximum size an array Quantity can be before its LaTeX representation\n" +
			"for IPython gets \"summarized\" (meaning only the first and last few elements\n" +
			"are shown with \"...\" between). Setting this to a negative number means that\n" +
			"the value will instead be whatever numpy gets from get_printoptions."},
}

// Logger configures log verbosity and the optional log file.
type Logger struct {
	*Namespace
	LogLevel        *Leaf[string]
	LogWarnings     *Leaf[bool]
	LogExceptions   *Leaf[bool]
	LogToFile       *Leaf[bool]
	LogFilePath     *Leaf[string]
	LogFileLevel    *Leaf[string]
	LogFileFormat   *Leaf[string]
	LogFileEncoding *Leaf[string]
}

func NewLogger() *Logger {
	ns := mustDeclare(SectionLogger, loggerSchema)
	return &Logger{
		Namespace:       ns,
		LogLevel:        bind[string](ns, "log_level"),
		LogWarnings:     bind[bool](ns, "log_warnings"),
		LogExceptions:   bind[bool](ns, "log_exceptions"),
		LogToFile:       bind[bool](ns, "log_to_file"),
		LogFilePath:     bind[string](ns, "log_file_path"),
		LogFileLevel:    bind[string](ns, "log_file_level"),
		LogFileFormat:   bind[string](ns, "log_file_format"),
		LogFileEncoding: bind[string](ns, "log_file_encoding"),
	}
}

// Console holds terminal rendering limits. Negative limits mean unlimited.
type Console struct {
	*Namespace
	UnicodeOutput *Leaf[bool]
	UseColor      *Leaf[bool]
	MaxLines      *Leaf[int32]
	MaxWidth      *Leaf[int32]
}

func NewConsole() *Console {
	ns := mustDeclare(SectionConsole, consoleSchema)
	return &Console{
		Namespace:     ns,
		UnicodeOutput: bind[bool](ns, "unicode_output"),
		UseColor:      bind[bool](ns, "use_color"),
		MaxLines:      bind[int32](ns, "max_lines"),
		MaxWidth:      bind[int32](ns, "max_width"),
	}
}

// Visualization holds WCS axes sampling densities.
type Visualization struct {
	*Namespace
	CoordinateRangeSamples *Leaf[int32]
	FrameBoundarySamples   *Leaf[int32]
	GridSamples            *Leaf[int32]
	ContourGridSamples     *Leaf[int32]
}

func NewVisualization() *Visualization {
	ns := mustDeclare(SectionVisualization, visualizationSchema)
	return &Visualization{
		Namespace:              ns,
		CoordinateRangeSamples: bind[int32](ns, "coordinate_range_samples"),
		FrameBoundarySamples:   bind[int32](ns, "frame_boundary_samples"),
		GridSamples:            bind[int32](ns, "grid_samples"),
		ContourGridSamples:     bind[int32](ns, "contour_grid_samples"),
	}
}

// IERS holds the Earth orientation data fetch policy.
type IERS struct {
	*Namespace
	AutoDownload          *Leaf[bool]
	AutoMaxAge            *Leaf[float64]
	IERSAutoURL           *Leaf[string]
	IERSAutoURLMirror     *Leaf[string]
	RemoteTimeout         *Leaf[float64]
	IERSDegradedAccuracy  *Leaf[string]
	SystemLeapSecondFile  *Leaf[string]
	IERSLeapSecondAutoURL *Leaf[string]
}

func NewIERS() *IERS {
	ns := mustDeclare(SectionIERS, iersSchema)
	return &IERS{
		Namespace:             ns,
		AutoDownload:          bind[bool](ns, "auto_download"),
		AutoMaxAge:            bind[float64](ns, "auto_max_age"),
		IERSAutoURL:           bind[string](ns, "iers_auto_url"),
		IERSAutoURLMirror:     bind[string](ns, "iers_auto_url_mirror"),
		RemoteTimeout:         bind[float64](ns, "remote_timeout"),
		IERSDegradedAccuracy:  bind[string](ns, "iers_degraded_accuracy"),
		SystemLeapSecondFile:  bind[string](ns, "system_leap_second_file"),
		IERSLeapSecondAutoURL: bind[string](ns, "iers_leap_second_auto_url"),
	}
}

// Data holds the remote data download policy.
type Data struct {
	*Namespace
	AllowInternet                  *Leaf[bool]
	ComputeHashBlockSize           *Leaf[int32]
	DataURL                        *Leaf[string]
	DataURLMirror                  *Leaf[string]
	DefaultHTTPUserAgent           *Leaf[string]
	DeleteTemporaryDownloadsAtExit *Leaf[bool]
	DownloadBlockSize              *Leaf[int32]
	DataQueryRemoteTimeout         *Leaf[float64]
}

func NewData() *Data {
	ns := mustDeclare(SectionData, dataSchema)
	return &Data{
		Namespace:                      ns,
		AllowInternet:                  bind[bool](ns, "allow_internet"),
		ComputeHashBlockSize:           bind[int32](ns, "compute_hash_block_size"),
		DataURL:                        bind[string](ns, "data_url"),
		DataURLMirror:                  bind[string](ns, "data_url_mirror"),
		DefaultHTTPUserAgent:           bind[string](ns, "default_http_user_agent"),
		DeleteTemporaryDownloadsAtExit: bind[bool](ns, "delete_temporary_downloads_at_exit"),
		DownloadBlockSize:              bind[int32](ns, "download_block_size"),
		DataQueryRemoteTimeout:         bind[float64](ns, "data_query_remote_timeout"),
	}
}

// UnitsQuantity is declared like the other sections but is not part of
// Configuration; it is neither written nor read by Serialize/Deserialize.
type UnitsQuantity struct {
	*Namespace
	LatexArrayThreshold *Leaf[int32]
}

func NewUnitsQuantity() *UnitsQuantity {
	ns := mustDeclare(SectionUnits, unitsSchema)
	return &UnitsQuantity{
		Namespace:           ns,
		LatexArrayThreshold: bind[int32](ns, "latex_array_threshold"),
	}
}
