package emoji

// standardNames is the built-in reference set of standard Slack
// shortcodes, in stable output order. It is intentionally a curated
// subset of the full Unicode list: the common names that actually show
// up in workspace usage.
var standardNames = []string{
	// smileys
	"smile", "smiley", "grin", "grinning", "laughing", "joy",
	"rofl", "sweat_smile", "blush", "innocent", "wink",
	"slightly_smiling_face", "upside_down_face", "relaxed", "relieved",
	"heart_eyes", "smiling_face_with_3_hearts", "star_struck",
	"kissing_heart", "yum", "stuck_out_tongue",
	"stuck_out_tongue_winking_eye", "zany_face", "hugging_face",
	"thinking_face", "face_with_raised_eyebrow", "neutral_face",
	"expressionless", "no_mouth", "smirk", "unamused", "roll_eyes",
	"grimacing", "lying_face", "pensive", "confused", "worried",
	"slightly_frowning_face", "frowning_face", "open_mouth", "hushed",
	"astonished", "flushed", "pleading_face", "cry", "sob",
	"scream", "fearful", "cold_sweat", "disappointed", "sweat",
	"weary", "tired_face", "yawning_face", "triumph", "rage",
	"angry", "exploding_head", "face_with_symbols_on_mouth",
	"mask", "face_with_thermometer", "face_with_head_bandage",
	"nauseated_face", "face_vomiting", "sneezing_face", "hot_face",
	"cold_face", "woozy_face", "dizzy_face", "sunglasses",
	"nerd_face", "face_with_monocle", "partying_face", "smiling_imp",
	"skull", "ghost", "alien", "robot_face", "clown_face",

	// gestures and people
	"wave", "raised_hands", "clap", "handshake", "thumbsup",
	"thumbsdown", "punch", "fist", "v", "ok_hand", "crossed_fingers",
	"metal", "call_me_hand", "point_up", "point_down", "point_left",
	"point_right", "raised_hand", "pray", "muscle", "writing_hand",
	"nail_care", "eyes", "eye", "ear", "nose", "brain",
	"bow", "shrug", "facepalm", "man-bowing", "woman-bowing",
	"dancer", "man_dancing", "walking", "runner", "standing_person",

	// hearts and symbols
	"heart", "orange_heart", "yellow_heart", "green_heart",
	"blue_heart", "purple_heart", "black_heart", "white_heart",
	"broken_heart", "heavy_heart_exclamation_mark_ornament",
	"two_hearts", "sparkling_heart", "heartpulse", "heartbeat",
	"revolving_hearts", "cupid", "gift_heart", "heart_decoration",
	"100", "anger", "boom", "dizzy", "sweat_drops", "dash",
	"zzz", "fire", "star", "star2", "sparkles", "zap", "tada",
	"confetti_ball", "balloon", "gift", "trophy", "medal",
	"first_place_medal", "crown", "gem", "bell", "mega",
	"loudspeaker", "speech_balloon", "thought_balloon",
	"question", "exclamation", "grey_question", "grey_exclamation",
	"heavy_check_mark", "white_check_mark", "ballot_box_with_check",
	"heavy_plus_sign", "heavy_minus_sign", "heavy_multiplication_x",
	"x", "o", "no_entry", "no_entry_sign", "warning",
	"infinity", "recycle", "check", "new", "free", "sos",
	"arrow_up", "arrow_down", "arrow_left", "arrow_right",
	"arrows_counterclockwise", "repeat", "fast_forward", "rewind",

	// nature
	"dog", "cat", "mouse", "hamster", "rabbit", "fox_face",
	"bear", "panda_face", "koala", "tiger", "lion_face", "cow",
	"pig", "frog", "monkey_face", "see_no_evil", "hear_no_evil",
	"speak_no_evil", "chicken", "penguin", "bird", "baby_chick",
	"duck", "eagle", "owl", "bat", "wolf", "boar", "horse",
	"unicorn_face", "bee", "bug", "butterfly", "snail", "snake",
	"turtle", "octopus", "squid", "shrimp", "crab", "blowfish",
	"tropical_fish", "fish", "dolphin", "whale", "shark",
	"crocodile", "t-rex", "sauropod", "dragon",
	"cactus", "christmas_tree", "evergreen_tree", "deciduous_tree",
	"palm_tree", "seedling", "herb", "four_leaf_clover", "shamrock",
	"maple_leaf", "fallen_leaf", "leaves", "mushroom", "rose",
	"tulip", "sunflower", "blossom", "cherry_blossom", "bouquet",
	"sun_with_face", "full_moon_with_face", "new_moon_with_face",
	"crescent_moon", "earth_africa", "earth_americas", "earth_asia",
	"rainbow", "cloud", "partly_sunny", "thunder_cloud_and_rain",
	"snowflake", "snowman", "umbrella", "droplet", "ocean",

	// food and drink
	"apple", "banana", "watermelon", "grapes", "strawberry",
	"melon", "cherries", "peach", "pineapple", "mango", "lemon",
	"avocado", "eggplant", "tomato", "hot_pepper", "corn",
	"carrot", "potato", "bread", "croissant", "bagel", "pretzel",
	"cheese_wedge", "egg", "fried_egg", "bacon", "pancakes",
	"waffle", "hamburger", "fries", "pizza", "hotdog", "sandwich",
	"taco", "burrito", "ramen", "spaghetti", "curry", "sushi",
	"bento", "dumpling", "fried_shrimp", "rice", "rice_ball",
	"salad", "popcorn", "butter", "cake", "birthday", "cupcake",
	"pie", "chocolate_bar", "candy", "lollipop", "doughnut",
	"cookie", "icecream", "ice_cream", "shaved_ice", "honey_pot",
	"coffee", "tea", "cup_with_straw", "bubble_tea", "beer",
	"beers", "clinking_glasses", "wine_glass", "cocktail",
	"tropical_drink", "champagne", "sake", "milk_glass",

	// activities and objects
	"soccer", "basketball", "football", "baseball", "tennis",
	"volleyball", "rugby_football", "8ball", "golf", "dart",
	"bowling", "video_game", "game_die", "jigsaw", "chess_pawn",
	"guitar", "violin", "trumpet", "saxophone", "drum_with_drumsticks",
	"microphone", "headphones", "musical_note", "notes",
	"art", "clapper", "movie_camera", "camera", "camera_with_flash",
	"tv", "radio", "computer", "desktop_computer", "keyboard",
	"printer", "phone", "iphone", "telephone_receiver", "pager",
	"fax", "battery", "electric_plug", "bulb", "flashlight",
	"candle", "wastebasket", "oil_drum", "moneybag", "dollar",
	"credit_card", "chart_with_upwards_trend",
	"chart_with_downwards_trend", "bar_chart", "clipboard",
	"calendar", "date", "spiral_calendar_pad", "card_index",
	"chart", "file_folder", "open_file_folder", "scissors",
	"pushpin", "paperclip", "straight_ruler", "triangular_ruler",
	"pencil2", "black_nib", "memo", "briefcase", "books", "book",
	"notebook", "ledger", "page_facing_up", "page_with_curl",
	"newspaper", "bookmark", "label", "envelope", "email",
	"incoming_envelope", "mailbox", "package", "lock", "unlock",
	"key", "hammer", "wrench", "hammer_and_wrench", "gear",
	"link", "chains", "magnet", "alembic", "microscope",
	"telescope", "satellite_antenna", "syringe", "pill",
	"door", "bed", "couch_and_lamp", "toilet", "shower", "bathtub",
	"hourglass", "hourglass_flowing_sand", "watch", "alarm_clock",
	"stopwatch", "timer_clock", "clock1", "clock12",

	// travel and places
	"car", "taxi", "bus", "trolleybus", "racing_car", "police_car",
	"ambulance", "fire_engine", "truck", "tractor", "bike",
	"motor_scooter", "motorcycle", "rotating_light", "train",
	"metro", "station", "airplane", "rocket", "helicopter",
	"boat", "ship", "ferry", "anchor", "construction", "fuelpump",
	"vertical_traffic_light", "world_map", "moyai", "statue_of_liberty",
	"tokyo_tower", "house", "house_with_garden", "office",
	"hospital", "bank", "hotel", "convenience_store", "school",
	"factory", "stadium", "tent", "mount_fuji", "volcano",
	"desert", "beach_with_umbrella", "national_park", "city_sunset",
	"bridge_at_night", "fountain", "ferris_wheel", "roller_coaster",

	// flags and misc
	"checkered_flag", "triangular_flag_on_post", "crossed_flags",
	"waving_white_flag", "waving_black_flag", "rainbow-flag",
	"pirate_flag",
}

// StandardNames returns the reference set in stable order. The caller
// must not mutate the returned slice.
func StandardNames() []string {
	return standardNames
}

// IsStandard reports whether name is in the built-in reference set
func IsStandard(name string) bool {
	_, ok := standardIndex[name]
	return ok
}

var standardIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(standardNames))
	for _, name := range standardNames {
		idx[name] = struct{}{}
	}
	return idx
}()
