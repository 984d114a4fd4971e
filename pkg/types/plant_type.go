// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// PlantType 定义防御者（植物）的类型
type PlantType int

const (
	// PlantUnknown 未知植物类型
	PlantUnknown PlantType = iota
	// PlantProducer while True: 定期产出 RAM
	PlantProducer
	// PlantShooter def shoot(): 标准射手
	PlantShooter
	// PlantLambda lambda: 免费、短射程
	PlantLambda
	// PlantAssert assert: 延迟布雷，接触即爆
	PlantAssert
	// PlantWall try: 高血量阻挡
	PlantWall
	// PlantRegex re.match: 穿透子弹
	PlantRegex
	// PlantKernel yield: 投掷，概率定身
	PlantKernel
	// PlantRepeater async def: 双发
	PlantRepeater
	// PlantIce await: 伤害 + 减速
	PlantIce
	// PlantDecorator @wrapper: 经过的子弹伤害翻倍
	PlantDecorator
	// PlantGatling class Gatling: 四连发
	PlantGatling
	// PlantTallWall finally: 超高血量
	PlantTallWall
	// PlantExit sys.exit(): 清空整行
	PlantExit
	// PlantHeavy import lib: 溅射
	PlantHeavy
	// PlantFrozenSet frozenset: 溅射 + 减速
	PlantFrozenSet
	// PlantBomb sudo rm -rf: 3 行范围爆炸
	PlantBomb
)

// plantTypeStringMap 植物类型到配置字符串的映射
var plantTypeStringMap = map[PlantType]string{
	PlantProducer:  "producer",
	PlantShooter:   "shooter",
	PlantLambda:    "lambda",
	PlantAssert:    "assert",
	PlantWall:      "wall",
	PlantRegex:     "regex",
	PlantKernel:    "kernel",
	PlantRepeater:  "repeater",
	PlantIce:       "ice",
	PlantDecorator: "decorator",
	PlantGatling:   "gatling",
	PlantTallWall:  "tall_wall",
	PlantExit:      "exit",
	PlantHeavy:     "heavy",
	PlantFrozenSet: "frozen_set",
	PlantBomb:      "bomb",
}

// stringToPlantTypeMap 配置字符串到植物类型的反向映射
var stringToPlantTypeMap map[string]PlantType

func init() {
	stringToPlantTypeMap = make(map[string]PlantType, len(plantTypeStringMap))
	for pt, s := range plantTypeStringMap {
		stringToPlantTypeMap[s] = pt
	}
	// 关键字别名（卡片上显示的代码符号）
	stringToPlantTypeMap["while"] = PlantProducer
	stringToPlantTypeMap["def"] = PlantShooter
	stringToPlantTypeMap["try"] = PlantWall
	stringToPlantTypeMap["sudo"] = PlantBomb
	stringToPlantTypeMap["await"] = PlantIce
	stringToPlantTypeMap["async"] = PlantRepeater
	stringToPlantTypeMap["class"] = PlantGatling
	stringToPlantTypeMap["finally"] = PlantTallWall
	stringToPlantTypeMap["import"] = PlantHeavy
	stringToPlantTypeMap["yield"] = PlantKernel
	stringToPlantTypeMap["wrapper"] = PlantDecorator
	stringToPlantTypeMap["frozenset"] = PlantFrozenSet
}

// PlantToolbarOrder 工具栏中植物卡片的显示顺序
var PlantToolbarOrder = []PlantType{
	PlantProducer,
	PlantShooter,
	PlantLambda,
	PlantAssert,
	PlantWall,
	PlantRegex,
	PlantKernel,
	PlantRepeater,
	PlantIce,
	PlantDecorator,
	PlantGatling,
	PlantTallWall,
	PlantExit,
	PlantHeavy,
	PlantFrozenSet,
	PlantBomb,
}

// String 返回植物类型的配置字符串表示
func (p PlantType) String() string {
	if s, ok := plantTypeStringMap[p]; ok {
		return s
	}
	return "unknown"
}

// PlantTypeFromString 将配置字符串转换为 PlantType
// 支持标准名称和关键字别名
func PlantTypeFromString(s string) PlantType {
	if pt, ok := stringToPlantTypeMap[s]; ok {
		return pt
	}
	return PlantUnknown
}
