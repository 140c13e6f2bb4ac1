//go:build mobile

package mobile

import "embed"

// dataFS 嵌入 data/dermamon.yaml 等玩法配置
//
// mobile/data 由 make prepare-mobile 从仓库根目录复制，不提交到版本库。
//
//go:embed data
var dataFS embed.FS
