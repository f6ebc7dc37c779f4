package v1alpha1

func StringToNarrativeSource(s string) NarrativeSource {
	switch s {
	case string(NarrativeSourceLlm):
		return NarrativeSourceLlm
	default:
		return NarrativeSourceTemplate
	}
}

func StringToAppointmentStatus(s string) AppointmentStatus {
	switch s {
	case string(AppointmentStatusConfirmed):
		return AppointmentStatusConfirmed
	case string(AppointmentStatusMailFailed):
		return AppointmentStatusMailFailed
	default:
		return AppointmentStatusPending
	}
}
