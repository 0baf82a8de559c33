package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/dkaranikas/komanda/internal/models"
)

var waiterNames = []string{
	"Γιώργος", "Μαρία", "Κώστας", "Ελένη", "Νίκος", "Δήμητρα",
	"Σπύρος", "Κατερίνα", "Θανάσης", "Φωτεινή", "Παναγιώτης", "Άννα",
}

type WaiterFactory struct {
	rng  *rand.Rand
	fake faker.Faker
}

func NewWaiterFactory(rng *rand.Rand) *WaiterFactory {
	return &WaiterFactory{
		rng:  rng,
		fake: faker.NewWithSeed(rand.NewSource(rng.Int63())),
	}
}

func (wf *WaiterFactory) CreateWaiter() *models.Waiter {
	return &models.Waiter{
		ID:       cuid.New(),
		Name:     waiterNames[wf.rng.Intn(len(waiterNames))],
		TypoBias: wf.fake.Float64(2, 50, 150) / 100,
	}
}
