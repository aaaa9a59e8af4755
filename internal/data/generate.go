package data

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var partners = []string{"Silva & Associados", "Costa Advocacia", "Pereira Jurídico", "Almeida Correspondentes", "Rocha & Lima"}
var clients = []string{"Banco Alfa", "Seguradora Beta", "Varejo Gama", "Telecom Delta"}
var types = []string{"Audiência", "Diligência"}
var demandTypes = []string{"Presencial", "Virtual", "Híbrida"}
var caseAreas = []string{"Cível", "Trabalhista", "Consumidor", "Tributário"}
var hearingTypes = []string{"Conciliação", "Instrução", "Una", "Julgamento"}
var statuses = []string{"Finalizada", "Cancelada", "Redesignada"}
var courts = []string{"TJSP", "TJRJ", "TRT2", "TJMG", "JEC"}
var districts = []struct{ Name, State string }{
	{"São Paulo", "SP"}, {"Campinas", "SP"}, {"Rio de Janeiro", "RJ"},
	{"Belo Horizonte", "MG"}, {"Curitiba", "PR"}, {"Salvador", "BA"},
}
var dataStatuses = []string{"Completo", "Incompleto", "Pendente"}
var guidance = []string{"Sim", "Não"}

// SyntheticHearings builds n hearing records of which round(n*failRate) are
// failures. The same seed always yields the same records.
func SyntheticHearings(n int, failRate float64, seed int64) []Hearing {
	rng := rand.New(rand.NewSource(seed))
	nFail := int(math.Round(float64(n) * failRate))
	failing := make(map[int]bool, nFail)
	for _, i := range rng.Perm(n)[:nFail] {
		failing[i] = true
	}

	base := time.Date(2023, time.January, 2, 9, 0, 0, 0, time.UTC)
	out := make([]Hearing, n)
	for i := 0; i < n; i++ {
		fail := failing[i]
		d := districts[rng.Intn(len(districts))]

		opened := base.AddDate(0, 0, rng.Intn(540)).Add(time.Duration(rng.Intn(10*60)) * time.Minute)
		lead := 5 + rng.Intn(40)
		if fail && rng.Float64() < 0.7 {
			lead = rng.Intn(4)
		}
		hearing := opened.AddDate(0, 0, lead).Add(time.Duration(rng.Intn(8*60)) * time.Minute)
		closed := hearing.AddDate(0, 0, rng.Intn(15))

		h := Hearing{
			ID:             "S" + strconv.Itoa(100000+i),
			Partner:        partners[rng.Intn(len(partners))],
			Client:         clients[rng.Intn(len(clients))],
			Type:           types[rng.Intn(len(types))],
			DemandType:     demandTypes[rng.Intn(len(demandTypes))],
			CaseArea:       caseAreas[rng.Intn(len(caseAreas))],
			HearingType:    hearingTypes[rng.Intn(len(hearingTypes))],
			Status:         statuses[rng.Intn(len(statuses))],
			Court:          courts[rng.Intn(len(courts))],
			District:       d.Name,
			DistrictState:  d.State,
			DataStatus:     dataStatuses[rng.Intn(len(dataStatuses))],
			ClientGuidance: guidance[rng.Intn(len(guidance))],
			Swaps:          rng.Intn(2),
			Declines:       rng.Intn(2),
			OpenedAt:       opened,
			HearingAt:      hearing,
			ClosedAt:       closed,
		}
		if fail {
			h.Failure = 1
			h.Swaps += 1 + rng.Intn(3)
			h.Absence = rng.Float64() < 0.6
			h.Default = rng.Float64() < 0.3
			h.Misconduct = rng.Float64() < 0.25
		} else {
			h.Absence = rng.Float64() < 0.05
			h.Default = rng.Float64() < 0.03
			h.Misconduct = rng.Float64() < 0.02
		}
		if rng.Float64() < 0.08 {
			h.ClientGuidance = ""
		}
		if rng.Float64() < 0.05 {
			h.ClosedAt = time.Time{}
		}
		out[i] = h
	}
	return out
}

// WriteSyntheticHearings writes SyntheticHearings as CSV to w.
func WriteSyntheticHearings(w io.Writer, n int, failRate float64, seed int64) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(Records(SyntheticHearings(n, failRate, seed))); err != nil {
		return err
	}
	return cw.Error()
}

// GenerateSyntheticHearings writes the synthetic dataset to outPath,
// creating its directory.
func GenerateSyntheticHearings(n int, failRate float64, seed int64, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSyntheticHearings(f, n, failRate, seed)
}
