// Package catalogo guarda las tablas fijas máquina → claves de refacción.
// Son datos de configuración cargados una vez; nada las muta en ejecución.
package catalogo

type Maquina struct {
	Clave    string `json:"clave"`
	Etiqueta string `json:"etiqueta"`
}

var MaquinaEtiquetas = map[string]string{
	"MAKER0609": "Maker",
	"BENDWORX":  "Bend Worx",
	"WELDWORX":  "Weld Worx",
	"PLASMA":    "Plasma Blade",
	"SHOPPRO":   "Shop Pro",
	"WORKS":     "Works",
	"MULTIHEAD": "Multihead",
	"CREATOR":   "Creator",
	"SAAP":      "SAAP",
}

// Orden de despliegue de las máquinas.
var MaquinaClaves = []string{
	"MAKER0609", "BENDWORX", "WELDWORX", "PLASMA", "SHOPPRO",
	"WORKS", "MULTIHEAD", "CREATOR", "SAAP",
}

// Refacciones sugeridas por máquina.
var MaquinaPiezas = map[string][]string{
	"MAKER0609": {
		"P00178", "P00183", "P00184", "P00185", "P00240", "P00241", "P00243", "P00244", "M00576", "P00295", "P02766",
		"P02767", "P02768", "P00835", "P00283",
	},

	"BENDWORX": {
		"P03842", "P03843", "P03844", "P03845", "P03846", "P03847", "P03848", "P03849", "P03850", "P00236", "P03851",
		"P03841", "P03839", "P03840", "P03939", "P03831", "P03832", "P03833", "P03834", "P03835", "P03836", "P03876",
		"P03875", "P03873", "P03874",
	},

	"WELDWORX": {
		"P03940", "P03941", "P03942", "P03943", "P03944", "P03945", "P03946", "P03947", "P03948", "P03949", "P03963",
		"P03964", "P03965", "P03966", "P03968", "P01205", "P03794", "P03967", "P03970", "P03973", "P03974", "P03976",
		"P03971", "P03674", "P03972", "P03887", "P00092", "P00924", "P02506", "P01202", "P02503", "P03619", "P03593",
		"P03994", "P03995", "P04004", "P04005", "P03563",
	},

	"PLASMA": {
		"P01083", "P02384", "P00935", "P00936", "P00939", "P00942", "P00945", "P00917", "P00949", "P00952", "P00953",
		"P03543", "P03544", "P03545", "P03546", "P03547", "P00934", "P00938", "P02021", "P02022", "P02023", "P02024",
		"P02026", "P02027", "P02921", "P00329", "P02832", "P00853", "M00749",
	},

	"SHOPPRO": {
		"P00152", "P00076", "P01091", "P00835", "P00092", "P03572", "P00001", "P04072", "P04158", "P00228", "P00229",
		"P00230", "P02987", "P00231", "P00234", "M00247", "P01205", "P02107", "P00177", "P00180", "P00182", "P00183",
		"P00184", "P00185", "P00245", "P00246", "P00247", "P00250", "P00251", "M00253", "P00148", "P01943", "P04191",
		"P03609", "P04012", "P04094", "P04013", "P01207", "P04077", "P02203", "P03452", "P00079", "P01990", "P00263",
		"P02748", "P00078", "P00079", "P03289", "P03315",
	},

	"WORKS": {
		"P04012", "P00411", "P00413", "P02221", "P00113", "P02203", "P00101", "P02925", "P00092", "P01990", "P00264",
		"P00001", "P00300", "P00003", "P00055", "P00148", "P00238", "P00263", "M00247", "P03572", "P01207", "P00695",
		"P00180", "P00182", "P00183", "P00184", "P00185", "P00255", "P00257", "P00258", "P00259", "P00256", "P02157",
		"P01092", "P00373", "P03046", "P02925", "P00428", "P00333", "P00854", "P00439", "P03466", "P00364", "P02169",
		"P01053", "P03883", "P03352", "P03816", "P03817", "P02158", "P03730", "P01100",
	},

	"MULTIHEAD": {
		"M00471", "M00472", "M00563", "P00177", "P00180", "P00182", "P00183", "P00184", "P00185", "P00245", "P00246",
		"P00247", "P00250", "P00251", "P02251", "P00301", "P00302", "P01167", "P01646", "M00042", "M00465", "P02764",
		"P03454", "P02169", "P00127", "P00128", "M00109", "P00329", "P00328", "M00182",
	},

	"CREATOR": {
		"P03677", "P00753", "P00197", "P03269", "P00163", "P03724", "P03743", "P03576", "M00776", "P03300", "P04188",
		"P00581", "P03156", "P02326", "P00584", "P03652", "P03678", "P03604", "P03660", "P03680", "P03157", "P03158",
		"P03162", "P03454", "P03457", "P04283", "P04229", "P03784", "P04142", "P03527", "P04284", "P04285",
	},

	"SAAP": {
		"P03304", "P03245", "P03250", "P03257", "P03256", "P03236", "P03242", "P03255", "P03253", "P03336", "P03249",
		"P03238", "P03246", "P03260", "P03251", "P03341", "P03261", "P01616", "P03241", "P03241", "P03244", "P03240",
		"P03344", "M00666", "P03345", "P03235", "M00672", "P03346", "M00686", "P03506",
	},
}

// Maquinas regresa las máquinas en orden de despliegue.
func Maquinas() []Maquina {
	out := make([]Maquina, 0, len(MaquinaClaves))
	for _, clave := range MaquinaClaves {
		out = append(out, Maquina{Clave: clave, Etiqueta: MaquinaEtiquetas[clave]})
	}
	return out
}

// Piezas regresa las claves sugeridas de una máquina; false si no existe.
func Piezas(clave string) ([]string, bool) {
	piezas, ok := MaquinaPiezas[clave]
	return piezas, ok
}
