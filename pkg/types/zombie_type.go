// Package types 定义共享的基础类型
package types

// ZombieType 定义攻击者（僵尸）的类型
type ZombieType int

const (
	// ZombieUnknown 未知僵尸类型
	ZombieUnknown ZombieType = iota

	ZombieSyntaxError   // 普通
	ZombieBug           // 路障
	ZombieLegacyCode    // 铁桶
	ZombieSpaghetti     // 橄榄球（快且肉）
	ZombieMonolith      // 巨人（稀有精英）
	ZombieGoto          // 撑杆跳（跳过第一个障碍）
	ZombieDeprecated    // 读报（护盾破后狂暴）
	ZombieRecursion     // 舞王（召唤伴舞）
	ZombieStackOverflow // 伴舞
)

// zombieTypeStringMap 僵尸类型到配置字符串的映射
var zombieTypeStringMap = map[ZombieType]string{
	ZombieSyntaxError:   "syntax_error",
	ZombieBug:           "bug",
	ZombieLegacyCode:    "legacy_code",
	ZombieSpaghetti:     "spaghetti",
	ZombieMonolith:      "monolith",
	ZombieGoto:          "goto",
	ZombieDeprecated:    "deprecated",
	ZombieRecursion:     "recursion",
	ZombieStackOverflow: "stack_overflow",
}

// stringToZombieTypeMap 配置字符串到僵尸类型的反向映射
var stringToZombieTypeMap map[string]ZombieType

func init() {
	stringToZombieTypeMap = make(map[string]ZombieType, len(zombieTypeStringMap))
	for zt, s := range zombieTypeStringMap {
		stringToZombieTypeMap[s] = zt
	}
	// 历史命名别名
	stringToZombieTypeMap["syntax"] = ZombieSyntaxError
	stringToZombieTypeMap["legacy"] = ZombieLegacyCode
	stringToZombieTypeMap["stack"] = ZombieStackOverflow
}

// String 返回僵尸类型的配置字符串表示（用于配置文件匹配）
func (z ZombieType) String() string {
	if s, ok := zombieTypeStringMap[z]; ok {
		return s
	}
	return "unknown"
}

// ZombieTypeFromString 将配置字符串转换为 ZombieType
// 支持标准名称和历史别名
func ZombieTypeFromString(s string) ZombieType {
	if zt, ok := stringToZombieTypeMap[s]; ok {
		return zt
	}
	return ZombieUnknown
}
