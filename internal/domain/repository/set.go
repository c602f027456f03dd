package repository

// Set agrupa los repositorios atados a una misma conexión o transacción.
type Set struct {
	Customers    CustomerRepository
	Projects     ProjectRepository
	Tasks        TaskRepository
	Appointments AppointmentRepository
	Folders      FolderRepository
	Documents    DocumentRepository
}
