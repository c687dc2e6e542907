package domain

// Field identifies a single scalar input on the tax planning form.
type Field string

const (
	FieldTotalEarnings   Field = "totalEarnings"
	FieldHRAPaid         Field = "hraPaid"
	FieldPF              Field = "pf"
	FieldVPF             Field = "vpf"
	FieldOthers80C       Field = "others80C"
	FieldHousingLoan     Field = "housingLoan"
	FieldSection80D      Field = "section80D"
	FieldSection80DD     Field = "section80DD"
	FieldSection80U      Field = "section80U"
	FieldSection80DDB    Field = "section80DDB"
	FieldSection80EEA    Field = "section80EEA"
	FieldSection80EEB    Field = "section80EEB"
	FieldSection80E      Field = "section80E"
	FieldSection80CCD1B  Field = "section80CCD1B"
	FieldEmployerNPS     Field = "employernps80ccd1b"
	FieldOtherIncome     Field = "otherIncome"

	// Derived fields. Never written directly; recomputed after every edit.
	FieldSection80C      Field = "section80C"
	FieldChapterVIOthers Field = "chapterVIOthers"
)

// EditableFields lists every field a user may write to, in form order.
var EditableFields = []Field{
	FieldTotalEarnings,
	FieldHRAPaid,
	FieldPF,
	FieldVPF,
	FieldOthers80C,
	FieldHousingLoan,
	FieldSection80D,
	FieldSection80DD,
	FieldSection80U,
	FieldSection80DDB,
	FieldSection80EEA,
	FieldSection80EEB,
	FieldSection80E,
	FieldSection80CCD1B,
	FieldEmployerNPS,
	FieldOtherIncome,
}

// ChapterVISources are the nine constituents of the Chapter VI-A Others
// aggregate. Each is individually clamped at edit time; the aggregate
// itself is an unclamped sum.
var ChapterVISources = []Field{
	FieldSection80D,
	FieldSection80DD,
	FieldSection80U,
	FieldSection80DDB,
	FieldSection80EEA,
	FieldSection80EEB,
	FieldSection80E,
	FieldSection80CCD1B,
	FieldEmployerNPS,
}

// Derived reports whether f is a derived aggregate rather than a
// user-editable input.
func (f Field) Derived() bool {
	return f == FieldSection80C || f == FieldChapterVIOthers
}

// Label returns the display label used on the form for f.
func (f Field) Label() string {
	switch f {
	case FieldTotalEarnings:
		return "Total Earnings"
	case FieldHRAPaid:
		return "Rent Paid Annually"
	case FieldPF:
		return "PF"
	case FieldVPF:
		return "VPF"
	case FieldOthers80C:
		return "80C Others"
	case FieldHousingLoan:
		return "Housing Loan Interest"
	case FieldSection80D:
		return "80D - Health Insurance"
	case FieldSection80DD:
		return "80DD - Handicapped Dependents"
	case FieldSection80U:
		return "80U - Permanent Disability"
	case FieldSection80DDB:
		return "80DDB - Terminal Disease"
	case FieldSection80EEA:
		return "80EEA - First Home Buyers"
	case FieldSection80EEB:
		return "80EEB - Electric Vehicle"
	case FieldSection80E:
		return "80E - Education Loan"
	case FieldSection80CCD1B:
		return "80CCD(1B) - NPS"
	case FieldEmployerNPS:
		return "Employer NPS 80CCD(2)"
	case FieldOtherIncome:
		return "Other Sources Income"
	case FieldSection80C:
		return "Total 80C"
	case FieldChapterVIOthers:
		return "Chapter VI-A Others"
	default:
		return string(f)
	}
}
