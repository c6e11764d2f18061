package provider

import (
	"fmt"
	"math/rand/v2"

	"github.com/jonathan/vettedge/internal/candidates"
)

// skillPools lists the skills a generated candidate can draw from, per role name.
var skillPools = map[string][]string{
	"Frontend Developer": {"React", "TypeScript", "CSS", "JavaScript", "HTML"},
	"Data Scientist":     {"Python", "Machine Learning", "SQL", "Statistics", "Pandas", "TensorFlow"},
	"UX Designer":        {"Figma", "User Research", "Wireframing", "Prototyping", "UI Design"},
	"Product Manager":    {"Product Strategy", "Agile", "User Stories", "Market Research", "Roadmapping"},
	"DevOps Engineer":    {"Docker", "Kubernetes", "AWS", "CI/CD", "Linux", "Terraform"},
}

var (
	degrees = []string{"Bachelor's", "Master's", "PhD"}
	fields  = []string{"Computer Science", "Engineering", "Design", "Business"}
)

// Generator produces mock candidates. The same seed always yields the same data.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Candidates generates count candidates for the role.
func (g *Generator) Candidates(role candidates.Role, count int) []candidates.Candidate {
	slug := RoleSlug(role.Name)
	out := make([]candidates.Candidate, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, candidates.Candidate{
			ID:         fmt.Sprintf("%s-%d", slug, i),
			Name:       fmt.Sprintf("Candidate %d", i),
			Email:      fmt.Sprintf("candidate%d@example.com", i),
			Score:      g.score(),
			Skills:     g.skills(role.Name),
			Experience: fmt.Sprintf("%d years", g.rng.IntN(10)+1),
			Education:  degrees[g.rng.IntN(len(degrees))] + " in " + fields[g.rng.IntN(len(fields))],
			Breakdown: candidates.Breakdown{
				Technical:     g.score(),
				Communication: g.score(),
				Leadership:    g.score(),
				Cultural:      g.score(),
				Experience:    g.score(),
			},
		})
	}
	return out
}

// score returns a value in [70,100].
func (g *Generator) score() int {
	return g.rng.IntN(31) + 70
}

// skills picks 3-5 distinct skills from the role's pool in shuffled order.
// Roles without a pool get no skills.
func (g *Generator) skills(roleName string) []string {
	pool := skillPools[roleName]
	if len(pool) == 0 {
		return []string{}
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := min(3+g.rng.IntN(3), len(shuffled))
	return shuffled[:n]
}

// Generate builds an in-memory provider with Count generated candidates for each role.
func Generate(roles []candidates.Role, seed uint64) *Memory {
	g := NewGenerator(seed)
	byRole := make(map[string][]candidates.Candidate, len(roles))
	for _, r := range roles {
		byRole[r.ID] = g.Candidates(r, r.Count)
	}
	return NewMemory(roles, byRole)
}
