package domain

// Node — узел медиа-пайплайна.
type Node struct {
	// ID — уникальный идентификатор узла (генерируется редактором).
	ID string `json:"id"`

	// Kind — тип узла из закрытого перечисления.
	Kind NodeKind `json:"kind"`

	// Data — payload узла. Может содержать сентинел "нет значения"
	// (см. IsUnset) — он никогда не трактуется как настоящее значение.
	Data NodeData `json:"data"`
}

// Clone возвращает копию узла с копией payload.
func (n Node) Clone() Node {
	n.Data = n.Data.Clone()
	return n
}

// Pipeline — полный граф {nodes, edges}, отправляемый оркестратору.
type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// FindNode возвращает узел по ID.
func (p *Pipeline) FindNode(id string) (Node, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
