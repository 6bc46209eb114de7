package weton

// Tibo is the relationship category selected by the combined neptu of a couple.
type Tibo struct {
	Remainder   int
	Name        string
	Description string
	BaseWeight  float64
}

// tiboTable is keyed by (neptuA + neptuB) mod 8. Remainder 0 is PESTHI,
// not an undefined case.
var tiboTable = [8]Tibo{
	{0, "PESTHI", "Kehidupan damai, rukun, dan tentram hingga tua.", 90},
	{1, "PEGAT", "Risiko perpisahan, masalah ekonomi, atau kekuasaan.", 30},
	{2, "RATU", "Sangat harmonis, disegani tetangga, dan sudah jodohnya.", 95},
	{3, "JODOH", "Sangat cocok, rukun, dan bisa menerima kekurangan masing-masing.", 90},
	{4, "TOPO", "Susah di awal pernikahan, namun akan sukses di masa depan.", 70},
	{5, "TINARI", "Murah rezeki, sering beruntung, dan mudah mencari nafkah.", 85},
	{6, "PADU", "Sering bertengkar namun tidak sampai bercerai (tetap rukun).", 60},
	{7, "SUJANAN", "Rentan isu perselingkuhan atau pertengkaran hebat.", 40},
}

// TiboFor returns the category for a combined neptu remainder. Any integer is
// accepted and reduced with floor-mod, so the lookup is total.
func TiboFor(remainder int) Tibo {
	return tiboTable[floorMod(int64(remainder), int64(len(tiboTable)))]
}

// Tibos lists all categories in remainder order 0..7.
func Tibos() []Tibo {
	out := make([]Tibo, len(tiboTable))
	copy(out, tiboTable[:])
	return out
}

// Score sums the neptu of two wetons and selects their Tibo. It is commutative.
func Score(a, b Weton) Tibo {
	return TiboFor(a.Neptu + b.Neptu)
}
