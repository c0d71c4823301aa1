package domain

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

var collectionLabels = map[string]map[CollectionStatus]string{
	LocaleEnglish: {
		CollectionStatusCollected: "Collected",
		CollectionStatusPostponed: "Postponed",
		CollectionStatusOverdue:   "Overdue",
		CollectionStatusDue:       "Due",
		CollectionStatusUpcoming:  "Upcoming",
	},
	LocaleArabic: {
		CollectionStatusCollected: "تم التحصيل",
		CollectionStatusPostponed: "مؤجل",
		CollectionStatusOverdue:   "متأخر",
		CollectionStatusDue:       "مستحق",
		CollectionStatusUpcoming:  "قادم",
	},
}

var supplyLabels = map[string]map[SupplyStatus]string{
	LocaleEnglish: {
		SupplyStatusCollected:       "Collected",
		SupplyStatusWorthCollecting: "Worth collecting",
		SupplyStatusPending:         "Pending",
	},
	LocaleArabic: {
		SupplyStatusCollected:       "تم التوريد",
		SupplyStatusWorthCollecting: "يستحق التوريد",
		SupplyStatusPending:         "قيد الانتظار",
	},
}

var displayLabels = map[string]map[DisplayStatus]string{
	LocaleEnglish: {
		DisplayStatusDraft:        "Draft",
		DisplayStatusNotStarted:   "Not started",
		DisplayStatusActive:       "Active",
		DisplayStatusExpiringSoon: "Active, expiring soon",
		DisplayStatusExpired:      "Expired",
		DisplayStatusTerminated:   "Terminated",
		DisplayStatusRenewed:      "Renewed",
		DisplayStatusSuspended:    "Suspended",
	},
	LocaleArabic: {
		DisplayStatusDraft:        "مسودة",
		DisplayStatusNotStarted:   "لم يبدأ",
		DisplayStatusActive:       "نشط",
		DisplayStatusExpiringSoon: "نشط - ينتهي قريباً",
		DisplayStatusExpired:      "منتهي",
		DisplayStatusTerminated:   "ملغي",
		DisplayStatusRenewed:      "مجدد",
		DisplayStatusSuspended:    "معلق",
	},
}

// Label returns the localized label, falling back to English for unknown locales.
func (s CollectionStatus) Label(locale string) string {
	if labels, ok := collectionLabels[locale]; ok {
		return labels[s]
	}
	return collectionLabels[LocaleEnglish][s]
}

// Color returns the badge color of the status.
func (s CollectionStatus) Color() Color {
	switch s {
	case CollectionStatusCollected:
		return ColorSuccess
	case CollectionStatusOverdue:
		return ColorDanger
	case CollectionStatusDue:
		return ColorWarning
	case CollectionStatusPostponed:
		return ColorInfo
	}
	return ColorGray
}

// Label returns the localized label, falling back to English for unknown locales.
func (s SupplyStatus) Label(locale string) string {
	if labels, ok := supplyLabels[locale]; ok {
		return labels[s]
	}
	return supplyLabels[LocaleEnglish][s]
}

// Color returns the badge color of the status.
func (s SupplyStatus) Color() Color {
	switch s {
	case SupplyStatusCollected:
		return ColorSuccess
	case SupplyStatusWorthCollecting:
		return ColorWarning
	}
	return ColorGray
}

// Label returns the localized label, falling back to English for unknown locales.
func (s DisplayStatus) Label(locale string) string {
	if labels, ok := displayLabels[locale]; ok {
		return labels[s]
	}
	return displayLabels[LocaleEnglish][s]
}

// Color returns the badge color of the status.
func (s DisplayStatus) Color() Color {
	switch s {
	case DisplayStatusActive:
		return ColorSuccess
	case DisplayStatusExpiringSoon, DisplayStatusSuspended:
		return ColorWarning
	case DisplayStatusExpired, DisplayStatusTerminated:
		return ColorDanger
	case DisplayStatusRenewed:
		return ColorInfo
	}
	return ColorGray
}
