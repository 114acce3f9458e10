package blocksinfo

// Field identifies a report column. Declaration order is the canonical column order.
type Field uint8

const (
	FieldBlock Field = iota
	FieldHash
	FieldDate
	FieldInterval
	FieldSize
	FieldWeight
	FieldUTXOInc
	FieldFee10
	FieldFee25
	FieldFee50
	FieldFee75
	FieldFee90
	FieldFeeAvg
	FieldFeeMin
	FieldFeeMax
	FieldTotalFee
	FieldOutputs
	FieldInputs
	FieldVersion
	FieldNTx
	FieldSubsidy
	FieldDifficulty
	FieldMiner
	numFields
)

// Source names the blob a field is read from.
type Source uint8

const (
	SourceLocal Source = iota
	SourceHeader
	SourceStats
)

type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// Column is the fixed display width of a field.
type Column struct {
	Width int
	Align Align
}

// KeyPath addresses a value inside a source blob. Index is -1 for scalar values.
type KeyPath struct {
	Key   string
	Index int
}

// FormatFn names the transform applied to a raw value before display.
type FormatFn uint8

const (
	FormatNone FormatFn = iota
	FormatDate
	FormatInterval
	FormatCoin
	FormatSubsidy
	FormatSci
)

// FieldDescriptor describes how one column is fetched, formatted and aggregated.
type FieldDescriptor struct {
	Name    string
	Source  Source
	KeyPath KeyPath
	Header1 string
	Header2 string
	Column  Column
	Format  FormatFn
	// Avg and Sum mark numeric columns that may be averaged or summed.
	Avg bool
	Sum bool
}

func key(k string) KeyPath {
	return KeyPath{Key: k, Index: -1}
}

func left(w int) Column  { return Column{Width: w, Align: AlignLeft} }
func right(w int) Column { return Column{Width: w, Align: AlignRight} }

func feePercentile(name, label string, idx int) FieldDescriptor {
	return FieldDescriptor{
		Name:    name,
		Source:  SourceStats,
		KeyPath: KeyPath{Key: "feerate_percentiles", Index: idx},
		Header1: label,
		Header2: "Fee",
		Column:  right(3),
		Avg:     true,
	}
}

var catalog = [numFields]FieldDescriptor{
	FieldBlock:    {Name: "block", Source: SourceLocal, KeyPath: key("height"), Header2: "Block", Column: left(6)},
	FieldHash:     {Name: "hash", Source: SourceLocal, KeyPath: key("hash"), Header2: "Hash", Column: left(64)},
	FieldDate:     {Name: "date", Source: SourceLocal, KeyPath: key("time"), Header2: "Date", Column: left(19), Format: FormatDate},
	FieldInterval: {Name: "interval", Source: SourceLocal, KeyPath: key("interval"), Header1: "Solve", Header2: "Time ", Column: right(8), Format: FormatInterval, Avg: true, Sum: true},
	FieldSize:     {Name: "size", Source: SourceStats, KeyPath: key("total_size"), Header2: "Size", Column: right(7), Avg: true, Sum: true},
	FieldWeight:   {Name: "weight", Source: SourceStats, KeyPath: key("total_weight"), Header2: "Weight", Column: right(7), Avg: true, Sum: true},
	FieldUTXOInc:  {Name: "utxo_inc", Source: SourceStats, KeyPath: key("utxo_increase"), Header1: " UTXO", Header2: " Incr", Column: right(5), Avg: true, Sum: true},
	FieldFee10:    feePercentile("fee10", "10%", 0),
	FieldFee25:    feePercentile("fee25", "25%", 1),
	FieldFee50:    feePercentile("fee50", "50%", 2),
	FieldFee75:    feePercentile("fee75", "75%", 3),
	FieldFee90:    feePercentile("fee90", "90%", 4),
	FieldFeeAvg:   {Name: "fee_avg", Source: SourceStats, KeyPath: key("avgfeerate"), Header1: "Avg", Header2: "Fee", Column: right(3), Avg: true},
	FieldFeeMin:   {Name: "fee_min", Source: SourceStats, KeyPath: key("minfeerate"), Header1: "Min", Header2: "Fee", Column: right(3), Avg: true},
	FieldFeeMax:   {Name: "fee_max", Source: SourceStats, KeyPath: key("maxfeerate"), Header1: "Max", Header2: "Fee", Column: right(5), Avg: true},
	FieldTotalFee: {Name: "totalfee", Source: SourceStats, KeyPath: key("totalfee"), Header2: "Total Fee", Column: right(10), Format: FormatCoin, Avg: true, Sum: true},
	FieldOutputs:  {Name: "outputs", Source: SourceStats, KeyPath: key("outs"), Header1: "Out-", Header2: "puts", Column: right(5), Avg: true, Sum: true},
	FieldInputs:   {Name: "inputs", Source: SourceStats, KeyPath: key("ins"), Header1: "In- ", Header2: "puts", Column: right(5), Avg: true, Sum: true},
	FieldVersion:  {Name: "version", Source: SourceHeader, KeyPath: key("versionHex"), Header2: "Version", Column: left(8)},
	FieldNTx:      {Name: "nTx", Source: SourceHeader, KeyPath: key("nTx"), Header2: " nTx ", Column: right(5), Avg: true, Sum: true},
	FieldSubsidy:  {Name: "subsidy", Source: SourceStats, KeyPath: key("subsidy"), Header1: "Sub-", Header2: "sidy", Column: left(5), Format: FormatSubsidy, Avg: true, Sum: true},
	FieldDifficulty: {
		Name: "difficulty", Source: SourceHeader, KeyPath: key("difficulty"),
		Header1: "Diffi-", Header2: "culty", Column: left(8), Format: FormatSci, Avg: true,
	},
	FieldMiner: {Name: "miner", Source: SourceLocal, KeyPath: key("miner"), Header2: "Miner", Column: left(5)},
}

var defaultFields = []Field{
	FieldBlock,
	FieldDate,
	FieldInterval,
	FieldSize,
	FieldWeight,
	FieldFee10,
	FieldFee25,
	FieldFee50,
	FieldFeeAvg,
	FieldFeeMin,
	FieldTotalFee,
	FieldVersion,
	FieldSubsidy,
}

// column spacing rules
var (
	lsqueeze  = fieldSet(FieldTotalFee, FieldInputs, FieldOutputs, FieldNTx)
	lsqueeze2 = fieldSet(FieldInterval)
	rsqueeze  = fieldSet()
	groups    = [][numFields]bool{
		fieldSet(FieldFee10, FieldFee25, FieldFee50, FieldFee75, FieldFee90, FieldFeeAvg, FieldFeeMin, FieldFeeMax),
	}
)

func fieldSet(fields ...Field) [numFields]bool {
	var set [numFields]bool
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// Descriptor returns the catalog entry of f.
func (f Field) Descriptor() FieldDescriptor {
	return catalog[f]
}

func (f Field) String() string {
	if f >= numFields {
		return "unknown"
	}
	return catalog[f].Name
}

// LookupField returns the field registered under name.
func LookupField(name string) (Field, bool) {
	for i := range catalog {
		if catalog[i].Name == name {
			return Field(i), true
		}
	}
	return 0, false
}

// AllFields returns the full catalog in canonical order.
func AllFields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// DefaultFields returns the columns shown when no field selection is given.
func DefaultFields() []Field {
	return append([]Field(nil), defaultFields...)
}

// Stat identifies a statistics block.
type Stat uint8

const (
	StatRange Stat = iota
	StatDiff
	StatAvg
	StatTotal
	StatColAvg
	numStats
)

var statNames = [numStats]string{
	StatRange:  "range",
	StatDiff:   "diff",
	StatAvg:    "avg",
	StatTotal:  "total",
	StatColAvg: "col_avg",
}

var defaultStats = []Stat{StatRange, StatDiff}

func (s Stat) String() string {
	if s >= numStats {
		return "unknown"
	}
	return statNames[s]
}

// LookupStat returns the stat registered under name.
func LookupStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}
