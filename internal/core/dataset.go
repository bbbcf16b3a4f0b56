package core

type TrainingData struct {
	Features [][]float64
	Labels   []string
}

func (d TrainingData) Len() int {
	return len(d.Labels)
}

func (d TrainingData) Dim() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}
