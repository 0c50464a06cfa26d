package brackets

// SeedingPolicy selects how BuildSingleElimination places competitors.
type SeedingPolicy string

const (
	// PolicyDeviationTable pairs seeds positionally and reduces the field with the plain
	// mod-2 rule plus the per-count deviation table.
	PolicyDeviationTable SeedingPolicy = "deviation_table"
	// PolicyStandard is classic power-of-two seeding: seed 1 meets the lowest seed and the
	// top seeds take the byes.
	PolicyStandard SeedingPolicy = "standard"
)

// ParseSeedingPolicy maps a stored or user supplied value to a policy, defaulting to the
// deviation table.
func ParseSeedingPolicy(s string) SeedingPolicy {
	if SeedingPolicy(s) == PolicyStandard {
		return PolicyStandard
	}
	return PolicyDeviationTable
}

type buildConfig struct {
	ids    IDGenerator
	policy SeedingPolicy
}

// Option configures a build.
type Option func(*buildConfig)

// WithIDGenerator replaces the default uuid ids.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *buildConfig) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithSeedingPolicy selects the seeding policy.
func WithSeedingPolicy(p SeedingPolicy) Option {
	return func(c *buildConfig) {
		c.policy = p
	}
}

func newBuildConfig(opts []Option) buildConfig {
	cfg := buildConfig{ids: UUIDGenerator(), policy: PolicyDeviationTable}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// StandardSeedOrder returns the 1-based seeds in bracket slot order for a bracket of size,
// which must be a power of two: 1, size, size/2, size/2+1, ...
func StandardSeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		n := len(order) * 2
		next := make([]int, 0, n)
		for _, s := range order {
			next = append(next, s, n+1-s)
		}
		order = next
	}
	return order
}

// standardSeeding places seeds on a power-of-two bracket. Slots whose seed exceeds the field
// are byes: the seed facing them advances without a match record. Rounds are then halved
// until the semifinal stage.
func (b *treeBuilder) standardSeeding(seeds []node) []node {
	size := nextPowerOfTwo(len(seeds))
	order := StandardSeedOrder(size)

	r := b.nextRound()
	contenders := make([]node, 0, size/2)
	for i := 0; i+1 < size; i += 2 {
		s1, s2 := order[i], order[i+1]
		switch {
		case s1 <= len(seeds) && s2 <= len(seeds):
			contenders = append(contenders, b.addMatch(r, seeds[s1-1], seeds[s2-1]))
		case s1 <= len(seeds):
			contenders = append(contenders, seeds[s1-1])
		case s2 <= len(seeds):
			contenders = append(contenders, seeds[s2-1])
		}
	}

	for len(contenders) > semifinalField {
		contenders = b.pairRound(contenders, 0)
	}
	return contenders
}
