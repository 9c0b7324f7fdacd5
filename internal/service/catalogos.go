package service

// Listas fijas de etiquetas del dominio. Se cargan una vez y no cambian en
// tiempo de ejecución.

// Clasificaciones válidas al aprobar una solicitud.
var ClasificacionOptions = []string{
	"Instalación",
	"Garantía de Equipo",
	"Garantía de Componente/ Servicio",
	"Cortesía",
}

var MedioEntregaOptions = []string{
	"Entrega en sucursal",
	"Envío por Uber",
	"Paquetería a domicilio del cliente",
	"Paquetería ocurre o central",
	"Envío por grúa interna",
}

// Status de seguimiento de una pieza, independiente del estado de la solicitud.
var ItemStatusOptions = []string{
	"Pieza sin Seguimiento",
	"Utilizada y con técnico",
	"No utilizada y con técnico",
	"En almacén AR",
	"Con el Cliente",
	"Utilizada y con Garantías",
	"Utilizada y en CDMX",
	"Utilizada y en MTY",
	"Utilizada y en Ocotlán",
}

var MotivoGarantiaOptions = []string{
	"Funcional",
	"Descuido técnico",
	"Refacción incorrecta",
	"Faltante",
	"Otro motivo",
}

// Valores con los que nace un item recién agregado desde el catálogo.
const (
	ItemStatusInicial = "SIN_SEGUIMIENTO"
	ItemMotivoInicial = "Definir motivo"
)

// Solo estas claves de parte admiten editar descripción y costo unitario
// después de creadas.
var partesEditables = map[string]bool{
	"S09999": true,
	"S00010": true,
}

func EsParteEditable(numeroParte string) bool {
	return partesEditables[numeroParte]
}
