package config

// GraphCaptions is the copy of the recommendation path scene.
type GraphCaptions struct {
	Idle    string `yaml:"idle"`
	Path    string `yaml:"path"`
	Broken  string `yaml:"broken"`
	Lost    string `yaml:"lost"`
	Target  string `yaml:"target"`
	Augment string `yaml:"augment_button"`
	Reset   string `yaml:"reset_button"`
}

// ScatterCaptions is the copy of the identity drift scene.
type ScatterCaptions struct {
	Alert     string `yaml:"alert"`
	ZoneLeft  string `yaml:"zone_left"`
	ZoneRight string `yaml:"zone_right"`
	AxisX     string `yaml:"axis_x"`
	AxisY     string `yaml:"axis_y"`
	Head      string `yaml:"head"`
	Tail      string `yaml:"tail"`
	Noise     string `yaml:"noise"`
}

// SparsityCaptions is the copy of the sparse matrix scene.
type SparsityCaptions struct {
	AxisX string `yaml:"axis_x"`
	AxisY string `yaml:"axis_y"`
}

// ContrastiveCaptions is the copy of the augmented views scene.
type ContrastiveCaptions struct {
	Original  string `yaml:"original"`
	Structure string `yaml:"structure"`
	Feature   string `yaml:"feature"`
	Noise     string `yaml:"noise"`
	Status    string `yaml:"status"`
	Show      string `yaml:"show_button"`
	Reset     string `yaml:"reset_button"`
}

// ConvergenceCaptions is the copy of the convergence playground.
type ConvergenceCaptions struct {
	Iteration string `yaml:"iteration"`
	Converged string `yaml:"converged"`
}

// EssenceCaptions is the copy of the essence learning cards.
type EssenceCaptions struct {
	Cards  []string `yaml:"cards"`
	Status string   `yaml:"status"`
	Show   string   `yaml:"show_button"`
	Reset  string   `yaml:"reset_button"`
}

// Captions holds every user-visible string. They are presentation data:
// the deck re-applies them when the config file changes.
type Captions struct {
	Slides      []string            `yaml:"slides"`
	Graph       GraphCaptions       `yaml:"graph"`
	Scatter     ScatterCaptions     `yaml:"scatter"`
	Sparsity    SparsityCaptions    `yaml:"sparsity"`
	Contrastive ContrastiveCaptions `yaml:"contrastive"`
	Convergence ConvergenceCaptions `yaml:"convergence"`
	Essence     EssenceCaptions     `yaml:"essence"`
}

// DefaultCaptions returns the built-in Spanish copy.
func DefaultCaptions() Captions {
	return Captions{
		Slides: []string{
			"El problema de la escasez",
			"Caminos de recomendación",
			"Ruido en las representaciones",
			"Vistas contrastivas",
			"Aprender la esencia",
			"Convergencia InfoNCE",
		},
		Graph: GraphCaptions{
			Idle:    `Pasa el mouse sobre "Usuario 1" para ver su potencial de recomendación`,
			Path:    "Camino de recomendación: Usuario 1 → Hyperion → Usuario 2 → Fundación",
			Broken:  `La recomendación está rota. El camino a "Fundación" ya no existe.`,
			Lost:    `La conexión se ha perdido. Ahora, vuelve a pasar el mouse sobre "Usuario 1"`,
			Target:  "¡Recomendación Potencial!",
			Augment: "Aumentar estructura",
			Reset:   "Reiniciar",
		},
		Scatter: ScatterCaptions{
			Alert:     `¡Identidad de Usuario Long Tail comprometida! Ahora en zona "Comedia"`,
			ZoneLeft:  "Ciencia Ficción",
			ZoneRight: "Comedia",
			AxisX:     "Dimensión Latente 1",
			AxisY:     "Dimensión Latente 2",
			Head:      "Power User",
			Tail:      "Usuario Long Tail",
			Noise:     "Nivel de ruido",
		},
		Sparsity: SparsityCaptions{
			AxisX: "Ítems (Películas)",
			AxisY: "Usuarios",
		},
		Contrastive: ContrastiveCaptions{
			Original:  "Vista Original",
			Structure: "Vista 1\n(Estructura)",
			Feature:   "Vista 2\n(Features)",
			Noise:     "+ ruido",
			Status:    "El modelo compara las 3 vistas y aprende qué patrones se mantienen constantes",
			Show:      "Generar vistas aumentadas",
			Reset:     "Reiniciar",
		},
		Convergence: ConvergenceCaptions{
			Iteration: "Iteración",
			Converged: "Los pares positivos se acercan",
		},
		Essence: EssenceCaptions{
			Cards: []string{"Original\n(De frente)", "Con bigote", "Poca luz", "Con anteojos"},
			Status: "El modelo aprende a ignorar las variaciones (bigote, luz, anteojos) y " +
				"concentrarse en la esencia invariante: la estructura de la cara, que identifica " +
				"a Alex en cualquier condición.",
			Show:  "Mostrar esencia",
			Reset: "Reiniciar",
		},
	}
}
