package entity

type ResourceType string

const (
	ResourceWood  ResourceType = "wood"
	ResourceStone ResourceType = "stone"
	ResourceIron  ResourceType = "iron"
	ResourceFood  ResourceType = "food"
	ResourceGold  ResourceType = "gold"
)

type Resource struct {
	Type      ResourceType `json:"type"`
	Amount    int          `json:"amount"`
	MaxAmount int          `json:"maxAmount"`
}

type City struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Position        Coordinate           `json:"position"`
	Level           int                  `json:"level"`
	Population      int                  `json:"population"`
	MaxPopulation   int                  `json:"maxPopulation"`
	Resources       []Resource           `json:"resources"`
	Buildings       []string             `json:"buildings"`
	ProductionRates map[ResourceType]int `json:"productionRates"`
}

func (c *City) resourceIndex(t ResourceType) int {
	for i := range c.Resources {
		if c.Resources[i].Type == t {
			return i
		}
	}
	return -1
}

// Amount 账本里该资源的数量，没有这一项为 0。
func (c *City) Amount(t ResourceType) int {
	if i := c.resourceIndex(t); i >= 0 {
		return c.Resources[i].Amount
	}
	return 0
}

// Deposit 入账并封顶，返回实际入账数。账本里没有该资源时按 defaultMax 新建。
func (c *City) Deposit(t ResourceType, amount, defaultMax int) int {
	i := c.resourceIndex(t)
	if i < 0 {
		c.Resources = append(c.Resources, Resource{Type: t, MaxAmount: defaultMax})
		i = len(c.Resources) - 1
	}
	r := &c.Resources[i]
	limit := r.MaxAmount
	if limit <= 0 {
		limit = defaultMax
	}
	before := r.Amount
	r.Amount = min(limit, r.Amount+amount)
	return r.Amount - before
}

// Withdraw 扣减，不足返回 false 且不修改。
func (c *City) Withdraw(t ResourceType, amount int) bool {
	i := c.resourceIndex(t)
	if i < 0 || c.Resources[i].Amount < amount {
		return false
	}
	c.Resources[i].Amount -= amount
	return true
}

func (c City) Clone() City {
	out := c
	if c.Resources != nil {
		out.Resources = cloneSlice(c.Resources)
	}
	if c.Buildings != nil {
		out.Buildings = cloneSlice(c.Buildings)
	}
	if c.ProductionRates != nil {
		out.ProductionRates = make(map[ResourceType]int, len(c.ProductionRates))
		for k, v := range c.ProductionRates {
			out.ProductionRates[k] = v
		}
	}
	return out
}
