package services

// Messages are the human readable texts returned in response envelopes for one kind.
type Messages struct {
	Listed    string
	Found     string
	Created   string
	Updated   string
	Deleted   string
	NotFound  string
	Duplicate string

	ListFailed   string
	GetFailed    string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// Kind declares an entity kind: its name, the default listing order and its messages.
type Kind struct {
	Name      string
	ListOrder string
	Messages  Messages
}

var ProductKind = Kind{
	Name:      "product",
	ListOrder: "created_at DESC",
	Messages: Messages{
		Listed:       "Productos obtenidos exitosamente",
		Found:        "Producto encontrado exitosamente",
		Created:      "Producto creado exitosamente",
		Updated:      "Producto actualizado exitosamente",
		Deleted:      "Producto eliminado exitosamente",
		NotFound:     "Producto no encontrado",
		Duplicate:    "Ya existe un producto con este nombre",
		ListFailed:   "Error al obtener los productos",
		GetFailed:    "Error al obtener el producto",
		CreateFailed: "Error al crear el producto",
		UpdateFailed: "Error al actualizar el producto",
		DeleteFailed: "Error al eliminar el producto",
	},
}

var BookKind = Kind{
	Name: "book",
	Messages: Messages{
		Listed:       "Libros obtenidos exitosamente",
		Found:        "Libro encontrado exitosamente",
		Created:      "Libro creado exitosamente",
		Updated:      "Libro actualizado exitosamente",
		Deleted:      "Libro eliminado correctamente",
		NotFound:     "Libro no encontrado",
		Duplicate:    "Ya existe un libro con este título",
		ListFailed:   "Error al obtener los libros",
		GetFailed:    "Error al obtener el libro",
		CreateFailed: "Error al crear el libro",
		UpdateFailed: "Error al actualizar el libro",
		DeleteFailed: "Error al eliminar el libro",
	},
}

var VolunteerKind = Kind{
	Name:      "volunteer",
	ListOrder: "created_at DESC",
	Messages: Messages{
		Listed:       "Voluntarios obtenidos exitosamente",
		Found:        "Voluntario encontrado exitosamente",
		Created:      "Voluntario registrado exitosamente",
		Updated:      "Voluntario actualizado exitosamente",
		Deleted:      "Voluntario eliminado exitosamente",
		NotFound:     "Voluntario no encontrado",
		Duplicate:    "Ya existe un voluntario registrado con este email",
		ListFailed:   "Error al obtener los voluntarios",
		GetFailed:    "Error al obtener el voluntario",
		CreateFailed: "Error al registrar el voluntario",
		UpdateFailed: "Error al actualizar el voluntario",
		DeleteFailed: "Error al eliminar el voluntario",
	},
}
