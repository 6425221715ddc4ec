package schedule

// ===============================
// Tipos de bloqueio
// ===============================

type BlockType string

const (
	BlockFolga       BlockType = "folga"
	BlockFerias      BlockType = "ferias"
	BlockDoenca      BlockType = "doenca"
	BlockTreinamento BlockType = "treinamento"
	BlockOutro       BlockType = "outro"
)

// NormalizeBlockType aceita qualquer string e devolve um tipo válido;
// valores desconhecidos caem em "outro".
func NormalizeBlockType(raw string) BlockType {
	switch BlockType(raw) {
	case BlockFolga, BlockFerias, BlockDoenca, BlockTreinamento, BlockOutro:
		return BlockType(raw)
	default:
		return BlockOutro
	}
}
